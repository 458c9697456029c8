package speech

import (
	"context"
	"fmt"

	"github.com/abhisek/sonoprep/internal/store"
)

// BannerKey marks the read-aloud tip as dismissed.
const BannerKey = "voice-reading-banner-dismissed"

// BannerText is the one-time tip shown before the first read-aloud.
const BannerText = "Tip: formulas and units are read in full, so \"MHz\" is spoken as \"megahertz\". Try voices and speeds with: sonoprep speak --list-voices"

// Banner tracks whether the read-aloud tip has been dismissed.
type Banner struct {
	kv store.KVRepo
}

// NewBanner stores the flag in kv.
func NewBanner(kv store.KVRepo) *Banner {
	return &Banner{kv: kv}
}

// Dismissed reports whether the flag is present. Any stored value counts.
func (b *Banner) Dismissed(ctx context.Context) (bool, error) {
	_, ok, err := b.kv.Get(ctx, BannerKey)
	if err != nil {
		return false, fmt.Errorf("read banner flag: %w", err)
	}
	return ok, nil
}

// Dismiss records the flag.
func (b *Banner) Dismiss(ctx context.Context) error {
	if err := b.kv.Set(ctx, BannerKey, "true"); err != nil {
		return fmt.Errorf("dismiss banner: %w", err)
	}
	return nil
}

// ShowOnce returns BannerText and dismisses it the first time it is
// called; later calls return "".
func (b *Banner) ShowOnce(ctx context.Context) (string, error) {
	dismissed, err := b.Dismissed(ctx)
	if err != nil || dismissed {
		return "", err
	}
	if err := b.Dismiss(ctx); err != nil {
		return "", err
	}
	return BannerText, nil
}
