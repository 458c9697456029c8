// Package diagrams maps study text to reference diagrams and imaging
// artifacts by keyword. Lookups are pure and need no network.
package diagrams

import "strings"

// Diagram is a reference illustration for a physics concept.
type Diagram struct {
	Title       string
	URL         string
	Description string
}

type entry struct {
	keywords []string
	diagram  Diagram
}

// Default is returned when no keyword matches.
var Default = Diagram{
	Title:       "Medical ultrasound overview",
	URL:         "https://en.wikipedia.org/wiki/Medical_ultrasound",
	Description: "How a pulse-echo system forms an image, from transducer to display.",
}

// table is matched in order; the first entries are the most specific.
var table = []entry{
	{
		keywords: []string{"doppler", "frequency shift", "insonation", "angle correction"},
		diagram: Diagram{
			Title:       "Doppler shift",
			URL:         "https://en.wikipedia.org/wiki/Doppler_effect",
			Description: "Reflector motion toward the transducer raises the echo frequency; cos(theta) scales the shift.",
		},
	},
	{
		keywords: []string{"aliasing", "nyquist"},
		diagram: Diagram{
			Title:       "Aliasing and the Nyquist limit",
			URL:         "https://en.wikipedia.org/wiki/Aliasing",
			Description: "Shifts above PRF/2 wrap around the baseline in pulsed Doppler.",
		},
	},
	{
		keywords: []string{"wavelength", "propagation speed", "wave equation"},
		diagram: Diagram{
			Title:       "Wavelength",
			URL:         "https://en.wikipedia.org/wiki/Wavelength",
			Description: "Distance covered by one cycle; equals propagation speed divided by frequency.",
		},
	},
	{
		keywords: []string{"frequency", "period", "hertz", "mhz"},
		diagram: Diagram{
			Title:       "Frequency and period",
			URL:         "https://en.wikipedia.org/wiki/Frequency",
			Description: "Cycles per second and the time one cycle takes; they are reciprocals.",
		},
	},
	{
		keywords: []string{"attenuation", "absorption", "half-value", "half value"},
		diagram: Diagram{
			Title:       "Attenuation",
			URL:         "https://en.wikipedia.org/wiki/Attenuation",
			Description: "Intensity lost with depth through absorption, reflection and scattering.",
		},
	},
	{
		keywords: []string{"impedance", "rayl", "reflection coefficient"},
		diagram: Diagram{
			Title:       "Acoustic impedance",
			URL:         "https://en.wikipedia.org/wiki/Acoustic_impedance",
			Description: "Density times propagation speed; a mismatch at a boundary creates an echo.",
		},
	},
	{
		keywords: []string{"refraction", "snell", "oblique incidence"},
		diagram: Diagram{
			Title:       "Refraction and Snell's law",
			URL:         "https://en.wikipedia.org/wiki/Snell%27s_law",
			Description: "Transmitted beams bend when speeds differ and incidence is oblique.",
		},
	},
	{
		keywords: []string{"piezoelectric", "crystal", "pzt", "transducer"},
		diagram: Diagram{
			Title:       "Piezoelectric transducer",
			URL:         "https://en.wikipedia.org/wiki/Piezoelectricity",
			Description: "Crystal elements convert voltage to pressure and back.",
		},
	},
	{
		keywords: []string{"near zone", "far zone", "fresnel", "fraunhofer", "focus", "beam width"},
		diagram: Diagram{
			Title:       "Beam anatomy",
			URL:         "https://en.wikipedia.org/wiki/Near_and_far_field",
			Description: "The beam narrows to the focus at the end of the near zone, then diverges.",
		},
	},
	{
		keywords: []string{"intensity", "spatial peak", "temporal average", "bioeffect", "thermal index", "mechanical index"},
		diagram: Diagram{
			Title:       "Sound intensity",
			URL:         "https://en.wikipedia.org/wiki/Sound_intensity",
			Description: "Power per unit area; the basis of SPTA and other exposure measures.",
		},
	},
}

// Find returns the diagrams whose keywords appear in any of texts,
// matched case-insensitively. It returns []Diagram{Default} when nothing
// matches.
func Find(texts ...string) []Diagram {
	hay := strings.ToLower(strings.Join(texts, " "))

	var out []Diagram
	for _, e := range table {
		if containsAny(hay, e.keywords) {
			out = append(out, e.diagram)
		}
	}
	if len(out) == 0 {
		return []Diagram{Default}
	}
	return out
}

func containsAny(hay string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(hay, k) {
			return true
		}
	}
	return false
}
