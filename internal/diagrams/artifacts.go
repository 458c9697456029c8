package diagrams

import "strings"

// Artifact describes an imaging artifact.
type Artifact struct {
	Name       string
	Cause      string
	Appearance string
	Remedy     string
	keywords   []string
}

var artifacts = []Artifact{
	{
		Name:       "Reverberation",
		Cause:      "Sound bounces repeatedly between two strong parallel reflectors.",
		Appearance: "Equally spaced horizontal lines extending deeper than the true reflector.",
		Remedy:     "Change the angle of insonation or the acoustic window.",
		keywords:   []string{"reverb", "ladder", "parallel reflector"},
	},
	{
		Name:       "Comet tail",
		Cause:      "Reverberations between closely spaced reflectors such as surgical clips.",
		Appearance: "A tapering solid line of echoes below a small bright reflector.",
		Remedy:     "Usually diagnostic; scan from a different angle to confirm.",
		keywords:   []string{"comet", "clip", "cholesterol"},
	},
	{
		Name:       "Ring down",
		Cause:      "Resonance of fluid trapped among gas bubbles.",
		Appearance: "A continuous bright streak deep to a gas collection.",
		Remedy:     "Diagnostic of gas; no adjustment removes it.",
		keywords:   []string{"ring", "gas", "bubble"},
	},
	{
		Name:       "Mirror image",
		Cause:      "A strong specular reflector redirects the beam so echoes are misplaced.",
		Appearance: "A duplicate structure equidistant on the far side of the reflector.",
		Remedy:     "Change the scan angle; recognise the diaphragm as a common mirror.",
		keywords:   []string{"mirror", "diaphragm", "specular", "ghost"},
	},
	{
		Name:       "Acoustic shadowing",
		Cause:      "High attenuation or reflection behind a structure such as a stone or bone.",
		Appearance: "A dark band deep to the attenuating structure.",
		Remedy:     "Diagnostic; lower frequency or compound imaging may reduce it.",
		keywords:   []string{"shadow", "stone", "bone", "calcification"},
	},
	{
		Name:       "Acoustic enhancement",
		Cause:      "Sound passes through a low-attenuation structure such as a cyst.",
		Appearance: "A brighter region deep to the structure.",
		Remedy:     "Diagnostic; adjust TGC if it obscures detail.",
		keywords:   []string{"enhancement", "cyst", "through transmission"},
	},
	{
		Name:       "Edge shadowing",
		Cause:      "Refraction at the curved edge of a round structure.",
		Appearance: "Thin shadows extending from the edges of a curved reflector.",
		Remedy:     "Scan perpendicular to the edge.",
		keywords:   []string{"edge", "refraction shadow"},
	},
	{
		Name:       "Refraction",
		Cause:      "The beam bends at an oblique boundary between media with different speeds.",
		Appearance: "A structure displayed side by side with a false copy.",
		Remedy:     "Change the angle of insonation.",
		keywords:   []string{"refract", "snell", "duplication"},
	},
	{
		Name:       "Speed error",
		Cause:      "Actual propagation speed differs from the assumed 1540 m/s.",
		Appearance: "Reflectors drawn too deep (slow medium) or too shallow (fast medium); a step-off in a straight line.",
		Remedy:     "Recognise the medium; no system control corrects it.",
		keywords:   []string{"speed", "range error", "propagation", "step-off"},
	},
	{
		Name:       "Range ambiguity",
		Cause:      "An echo returns after the next pulse was sent because PRF is too high for the depth.",
		Appearance: "Deep structures drawn too shallow.",
		Remedy:     "Lower the PRF or increase the imaging depth.",
		keywords:   []string{"range ambiguity", "prf", "depth"},
	},
	{
		Name:       "Side lobes and grating lobes",
		Cause:      "Off-axis energy from single-element (side) or array (grating) transducers.",
		Appearance: "Echoes from off-axis reflectors drawn on the main beam axis.",
		Remedy:     "Subdicing and apodization on the transducer; harmonics help.",
		keywords:   []string{"lobe", "grating", "side lobe", "apodization", "subdicing"},
	},
	{
		Name:       "Slice thickness",
		Cause:      "The beam has finite thickness perpendicular to the scan plane.",
		Appearance: "False echoes filling in anechoic structures such as cysts.",
		Remedy:     "Use a 1.5-D array or elevational focusing.",
		keywords:   []string{"slice", "section thickness", "elevational"},
	},
	{
		Name:       "Aliasing",
		Cause:      "The Doppler shift exceeds the Nyquist limit (PRF/2).",
		Appearance: "Spectral peaks wrap around the baseline; color flow shows the wrong direction.",
		Remedy:     "Raise the PRF or scale, shift the baseline, lower the frequency, or use CW Doppler.",
		keywords:   []string{"alias", "nyquist", "wrap"},
	},
}

// Artifacts returns the full artifact table.
func Artifacts() []Artifact {
	out := make([]Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}

// FindArtifacts returns artifacts whose name or keywords contain term, or
// whose keywords appear in term. Matching is case-insensitive. A blank
// term returns nil.
func FindArtifacts(term string) []Artifact {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []Artifact
	for _, a := range artifacts {
		if matchesArtifact(a, term) {
			out = append(out, a)
		}
	}
	return out
}

func matchesArtifact(a Artifact, term string) bool {
	if strings.Contains(strings.ToLower(a.Name), term) {
		return true
	}
	for _, k := range a.keywords {
		if strings.Contains(k, term) || strings.Contains(term, k) {
			return true
		}
	}
	return false
}
