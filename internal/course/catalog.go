package course

func init() {
	if err := validateModules(seedModules); err != nil {
		panic(err)
	}
	c = buildCatalog(seedModules)
}

// FinalExamID is the quiz ID used for the final exam.
const FinalExamID = "final-exam"

var seedModules = []Module{
	{
		ID:          "waves",
		Name:        "Physical Principles of Sound",
		Description: "Acoustic variables, wave parameters, and the wave equation.",
		Topics: []Topic{
			{ID: "waves.acoustic-variables", Name: "Acoustic variables"},
			{ID: "waves.frequency-period", Name: "Frequency and period"},
			{ID: "waves.wavelength", Name: "Wavelength and the wave equation"},
			{ID: "waves.amplitude-power", Name: "Amplitude, power and intensity"},
			{ID: "waves.decibels", Name: "Decibels"},
		},
	},
	{
		ID:            "propagation",
		Name:          "Propagation in Tissue",
		Description:   "Speed, attenuation, impedance, reflection and refraction.",
		Prerequisites: []string{"waves"},
		Topics: []Topic{
			{ID: "propagation.speed", Name: "Propagation speed"},
			{ID: "propagation.attenuation", Name: "Attenuation"},
			{ID: "propagation.impedance", Name: "Acoustic impedance"},
			{ID: "propagation.reflection", Name: "Reflection and scattering"},
			{ID: "propagation.refraction", Name: "Refraction"},
			{ID: "propagation.range-equation", Name: "The range equation"},
		},
	},
	{
		ID:            "pulsed",
		Name:          "Pulsed Ultrasound",
		Description:   "Pulse duration, PRP, PRF, spatial pulse length and duty factor.",
		Prerequisites: []string{"waves"},
		Topics: []Topic{
			{ID: "pulsed.pulse-duration", Name: "Pulse duration"},
			{ID: "pulsed.prp-prf", Name: "PRP and PRF"},
			{ID: "pulsed.spl", Name: "Spatial pulse length"},
			{ID: "pulsed.duty-factor", Name: "Duty factor"},
		},
	},
	{
		ID:            "transducers",
		Name:          "Transducers and Beams",
		Description:   "Piezoelectric elements, beam anatomy, focusing and resolution.",
		Prerequisites: []string{"pulsed"},
		Topics: []Topic{
			{ID: "transducers.piezoelectric", Name: "Piezoelectric effect"},
			{ID: "transducers.construction", Name: "Transducer construction"},
			{ID: "transducers.beam", Name: "Near zone, focus and far zone"},
			{ID: "transducers.axial-resolution", Name: "Axial resolution"},
			{ID: "transducers.lateral-resolution", Name: "Lateral resolution"},
			{ID: "transducers.arrays", Name: "Array transducers"},
		},
	},
	{
		ID:            "instrumentation",
		Name:          "Imaging Instrumentation",
		Description:   "Receiver functions, display modes, storage and temporal resolution.",
		Prerequisites: []string{"propagation", "transducers"},
		Topics: []Topic{
			{ID: "instrumentation.receiver", Name: "Receiver functions"},
			{ID: "instrumentation.display", Name: "Display modes"},
			{ID: "instrumentation.frame-rate", Name: "Frame rate and temporal resolution"},
			{ID: "instrumentation.harmonics", Name: "Harmonic imaging"},
		},
	},
	{
		ID:            "doppler",
		Name:          "Doppler and Hemodynamics",
		Description:   "The Doppler equation, spectral and color Doppler, aliasing and flow.",
		Prerequisites: []string{"propagation", "pulsed"},
		Topics: []Topic{
			{ID: "doppler.equation", Name: "The Doppler equation"},
			{ID: "doppler.spectral", Name: "Pulsed and continuous wave Doppler"},
			{ID: "doppler.color", Name: "Color and power Doppler"},
			{ID: "doppler.aliasing", Name: "Aliasing and the Nyquist limit"},
			{ID: "doppler.hemodynamics", Name: "Hemodynamics"},
		},
	},
	{
		ID:            "artifacts",
		Name:          "Artifacts",
		Description:   "How violated assumptions produce imaging and Doppler artifacts.",
		Prerequisites: []string{"instrumentation"},
		Topics: []Topic{
			{ID: "artifacts.reverberation", Name: "Reverberation and comet tail"},
			{ID: "artifacts.shadowing", Name: "Shadowing and enhancement"},
			{ID: "artifacts.mirror", Name: "Mirror image"},
			{ID: "artifacts.speed-error", Name: "Speed error and range ambiguity"},
			{ID: "artifacts.lobes", Name: "Side and grating lobes"},
		},
	},
	{
		ID:            "safety",
		Name:          "Bioeffects and Safety",
		Description:   "Thermal and mechanical bioeffects, intensities and ALARA.",
		Prerequisites: []string{"propagation"},
		Topics: []Topic{
			{ID: "safety.intensities", Name: "Intensity measures"},
			{ID: "safety.thermal", Name: "Thermal index"},
			{ID: "safety.mechanical", Name: "Mechanical index and cavitation"},
			{ID: "safety.alara", Name: "ALARA"},
		},
	},
	{
		ID:            "qa",
		Name:          "Quality Assurance",
		Description:   "Phantoms, performance testing and statistical indices.",
		Prerequisites: []string{"instrumentation"},
		Topics: []Topic{
			{ID: "qa.phantoms", Name: "Phantoms"},
			{ID: "qa.performance", Name: "System performance tests"},
			{ID: "qa.statistics", Name: "Sensitivity, specificity and accuracy"},
		},
	},
}
