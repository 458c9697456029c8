package quiz

var seedQuestions = []Question{
	// Physical principles
	{
		ID: "waves-01", ModuleID: "waves", Topic: "waves.acoustic-variables",
		Prompt:      "Which of the following is NOT an acoustic variable?",
		Options:     []string{"Pressure", "Density", "Distance", "Frequency"},
		Answer:      3,
		Explanation: "The acoustic variables are pressure, density and particle motion (distance). Frequency is a wave parameter, not a variable that oscillates.",
	},
	{
		ID: "waves-02", ModuleID: "waves", Topic: "waves.frequency-period",
		Prompt:      "A transducer operates at 5 MHz. What is the period?",
		Options:     []string{"0.2 µs", "2 µs", "5 µs", "0.5 µs"},
		Answer:      0,
		Explanation: "Period and frequency are reciprocals: 1 / 5 MHz = 0.2 µs.",
	},
	{
		ID: "waves-03", ModuleID: "waves", Topic: "waves.wavelength",
		Prompt:      "What is the wavelength of a 2 MHz sound wave in soft tissue?",
		Options:     []string{"0.15 mm", "0.77 mm", "1.54 mm", "3.08 mm"},
		Answer:      1,
		Explanation: "Wavelength (mm) = 1.54 mm/µs divided by frequency (MHz): 1.54 / 2 = 0.77 mm.",
	},
	{
		ID: "waves-04", ModuleID: "waves", Topic: "waves.amplitude-power",
		Prompt:      "If the amplitude of a wave is doubled, the power",
		Options:     []string{"Doubles", "Is halved", "Quadruples", "Is unchanged"},
		Answer:      2,
		Explanation: "Power is proportional to amplitude squared, so doubling amplitude quadruples power.",
	},
	{
		ID: "waves-05", ModuleID: "waves", Topic: "waves.decibels",
		Prompt:      "An intensity decrease of 3 dB means the intensity",
		Options:     []string{"Is reduced to one half", "Is reduced to one tenth", "Is reduced to one quarter", "Increases by 3 W/cm²"},
		Answer:      0,
		Explanation: "Every 3 dB of loss halves the intensity; 10 dB of loss leaves one tenth.",
	},

	// Propagation
	{
		ID: "propagation-01", ModuleID: "propagation", Topic: "propagation.speed",
		Prompt:      "Propagation speed in a medium is determined by",
		Options:     []string{"The sound source only", "The medium only", "Both source and medium", "Frequency only"},
		Answer:      1,
		Explanation: "Speed depends on the stiffness and density of the medium. The source sets frequency.",
	},
	{
		ID: "propagation-02", ModuleID: "propagation", Topic: "propagation.attenuation",
		Prompt:      "Using 0.5 dB/cm/MHz, what is the total attenuation of a 4 MHz beam after 6 cm of soft tissue?",
		Options:     []string{"3 dB", "6 dB", "12 dB", "24 dB"},
		Answer:      2,
		Explanation: "Attenuation = 0.5 × 4 MHz × 6 cm = 12 dB.",
	},
	{
		ID: "propagation-03", ModuleID: "propagation", Topic: "propagation.impedance",
		Prompt:      "Acoustic impedance is calculated as",
		Options:     []string{"Density × propagation speed", "Density ÷ propagation speed", "Frequency × wavelength", "Stiffness × density"},
		Answer:      0,
		Explanation: "Z = ρ × c, measured in rayls.",
	},
	{
		ID: "propagation-04", ModuleID: "propagation", Topic: "propagation.reflection",
		Prompt:      "With normal incidence, reflection occurs only when the two media differ in",
		Options:     []string{"Propagation speed", "Acoustic impedance", "Density", "Stiffness"},
		Answer:      1,
		Explanation: "A reflection at normal incidence requires an impedance mismatch.",
	},
	{
		ID: "propagation-05", ModuleID: "propagation", Topic: "propagation.refraction",
		Prompt:      "Refraction requires oblique incidence and",
		Options:     []string{"Different impedances", "Different propagation speeds", "Different densities", "Identical media"},
		Answer:      1,
		Explanation: "Snell's law: transmission bends only when the propagation speeds of the media differ.",
	},
	{
		ID: "propagation-06", ModuleID: "propagation", Topic: "propagation.range-equation",
		Prompt:      "An echo returns 39 µs after the pulse is sent. How deep is the reflector in soft tissue?",
		Options:     []string{"1 cm", "2 cm", "3 cm", "6 cm"},
		Answer:      2,
		Explanation: "Each centimetre of depth adds 13 µs of go-return time: 39 / 13 = 3 cm.",
	},

	// Pulsed ultrasound
	{
		ID: "pulsed-01", ModuleID: "pulsed", Topic: "pulsed.pulse-duration",
		Prompt:      "Pulse duration is equal to",
		Options:     []string{"Number of cycles × period", "Number of cycles × wavelength", "PRP × duty factor", "Imaging depth × 13 µs"},
		Answer:      0,
		Explanation: "Pulse duration (µs) is the number of cycles in the pulse times the period.",
	},
	{
		ID: "pulsed-02", ModuleID: "pulsed", Topic: "pulsed.prp-prf",
		Prompt:      "When imaging depth increases, the pulse repetition frequency",
		Options:     []string{"Increases", "Decreases", "Is unchanged", "Doubles"},
		Answer:      1,
		Explanation: "Deeper imaging lengthens the listening time, so PRP increases and PRF decreases.",
	},
	{
		ID: "pulsed-03", ModuleID: "pulsed", Topic: "pulsed.spl",
		Prompt:      "A pulse has 3 cycles and a wavelength of 0.5 mm. What is the spatial pulse length?",
		Options:     []string{"0.17 mm", "1.5 mm", "3.5 mm", "6 mm"},
		Answer:      1,
		Explanation: "SPL = cycles × wavelength = 3 × 0.5 mm = 1.5 mm.",
	},
	{
		ID: "pulsed-04", ModuleID: "pulsed", Topic: "pulsed.duty-factor",
		Prompt:      "What is the duty factor of continuous wave ultrasound?",
		Options:     []string{"0%", "1%", "50%", "100%"},
		Answer:      3,
		Explanation: "A continuous wave is always transmitting, so its duty factor is 100%.",
	},

	// Transducers
	{
		ID: "transducers-01", ModuleID: "transducers", Topic: "transducers.piezoelectric",
		Prompt:      "Above which temperature does a PZT element lose its piezoelectric properties?",
		Options:     []string{"Doppler temperature", "Curie temperature", "Kelvin point", "Boiling point"},
		Answer:      1,
		Explanation: "Heating a crystal above its Curie point depolarizes it permanently.",
	},
	{
		ID: "transducers-02", ModuleID: "transducers", Topic: "transducers.construction",
		Prompt:      "The matching layer thickness is ideally",
		Options:     []string{"One quarter wavelength", "One half wavelength", "One wavelength", "Two wavelengths"},
		Answer:      0,
		Explanation: "A quarter-wave matching layer maximizes transmission between element and skin.",
	},
	{
		ID: "transducers-03", ModuleID: "transducers", Topic: "transducers.beam",
		Prompt:      "Increasing the frequency of an unfocused transducer makes the near zone",
		Options:     []string{"Shorter", "Longer", "Unchanged", "Disappear"},
		Answer:      1,
		Explanation: "Near zone length = D² × f / (4 × c): higher frequency gives a deeper focus.",
	},
	{
		ID: "transducers-04", ModuleID: "transducers", Topic: "transducers.axial-resolution",
		Prompt:      "Axial resolution equals",
		Options:     []string{"Beam width", "One half of the spatial pulse length", "Twice the wavelength", "The near zone length"},
		Answer:      1,
		Explanation: "Two reflectors along the beam are resolved when separated by more than SPL / 2.",
	},
	{
		ID: "transducers-05", ModuleID: "transducers", Topic: "transducers.lateral-resolution",
		Prompt:      "Lateral resolution is best at",
		Options:     []string{"The transducer face", "The focus", "The far zone", "Two near zone lengths"},
		Answer:      1,
		Explanation: "Lateral resolution equals beam width, which is narrowest at the focus.",
	},
	{
		ID: "transducers-06", ModuleID: "transducers", Topic: "transducers.arrays",
		Prompt:      "Electronic steering of a phased array is achieved by",
		Options:     []string{"Moving the crystal", "Time-delayed excitation of elements", "Changing the matching layer", "Increasing PRF"},
		Answer:      1,
		Explanation: "Phasing the firing of the elements steers and focuses the beam electronically.",
	},

	// Instrumentation
	{
		ID: "instrumentation-01", ModuleID: "instrumentation", Topic: "instrumentation.receiver",
		Prompt:      "Time gain compensation corrects for",
		Options:     []string{"Refraction", "Attenuation with depth", "Aliasing", "Reverberation"},
		Answer:      1,
		Explanation: "TGC boosts echoes from deeper reflectors to offset attenuation.",
	},
	{
		ID: "instrumentation-02", ModuleID: "instrumentation", Topic: "instrumentation.display",
		Prompt:      "Which display mode plots reflector position against time?",
		Options:     []string{"A-mode", "B-mode", "M-mode", "C-mode"},
		Answer:      2,
		Explanation: "M-mode (motion mode) shows depth on one axis and time on the other.",
	},
	{
		ID: "instrumentation-03", ModuleID: "instrumentation", Topic: "instrumentation.frame-rate",
		Prompt:      "Which change improves temporal resolution?",
		Options:     []string{"Increasing depth", "Adding focal zones", "Narrowing the sector", "Increasing line density"},
		Answer:      2,
		Explanation: "Fewer scan lines per frame raises the frame rate and improves temporal resolution.",
	},
	{
		ID: "instrumentation-04", ModuleID: "instrumentation", Topic: "instrumentation.harmonics",
		Prompt:      "Tissue harmonic signals are created by",
		Options:     []string{"The transducer", "Nonlinear propagation in tissue", "The receiver", "The scan converter"},
		Answer:      1,
		Explanation: "Harmonics build up as the wave travels nonlinearly through tissue, strongest in the main beam.",
	},

	// Doppler
	{
		ID: "doppler-01", ModuleID: "doppler", Topic: "doppler.equation",
		Prompt:      "At what insonation angle is the measured Doppler shift zero?",
		Options:     []string{"0°", "30°", "60°", "90°"},
		Answer:      3,
		Explanation: "The Doppler shift is proportional to cos θ, and cos 90° = 0.",
	},
	{
		ID: "doppler-02", ModuleID: "doppler", Topic: "doppler.spectral",
		Prompt:      "The main advantage of continuous wave Doppler over pulsed wave is",
		Options:     []string{"Range resolution", "No aliasing", "Better axial resolution", "Color display"},
		Answer:      1,
		Explanation: "CW Doppler measures very high velocities without aliasing but has range ambiguity.",
	},
	{
		ID: "doppler-03", ModuleID: "doppler", Topic: "doppler.color",
		Prompt:      "Power Doppler displays",
		Options:     []string{"Flow direction", "Mean velocity", "The strength of Doppler shifts", "Peak velocity"},
		Answer:      2,
		Explanation: "Power (energy) mode encodes amplitude, so it is sensitive to slow flow but shows no direction or velocity.",
	},
	{
		ID: "doppler-04", ModuleID: "doppler", Topic: "doppler.aliasing",
		Prompt:      "The Nyquist limit equals",
		Options:     []string{"PRF", "PRF ÷ 2", "2 × PRF", "PRF²"},
		Answer:      1,
		Explanation: "Aliasing appears when the Doppler shift exceeds half the PRF.",
	},
	{
		ID: "doppler-05", ModuleID: "doppler", Topic: "doppler.hemodynamics",
		Prompt:      "According to the continuity equation, velocity through a stenosis",
		Options:     []string{"Decreases", "Increases", "Is unchanged", "Becomes zero"},
		Answer:      1,
		Explanation: "Flow is constant, so a smaller area must carry a higher velocity.",
	},

	// Artifacts
	{
		ID: "artifacts-01", ModuleID: "artifacts", Topic: "artifacts.reverberation",
		Prompt:      "Equally spaced parallel lines below two strong reflectors are",
		Options:     []string{"Mirror image", "Reverberation", "Shadowing", "Side lobes"},
		Answer:      1,
		Explanation: "Sound bouncing between two strong reflectors produces reverberations at equal intervals.",
	},
	{
		ID: "artifacts-02", ModuleID: "artifacts", Topic: "artifacts.shadowing",
		Prompt:      "Posterior enhancement appears deep to",
		Options:     []string{"A gallstone", "A fluid-filled cyst", "Bone", "Air"},
		Answer:      1,
		Explanation: "Fluid attenuates less than surrounding tissue, so tissue behind it appears brighter.",
	},
	{
		ID: "artifacts-03", ModuleID: "artifacts", Topic: "artifacts.mirror",
		Prompt:      "A mirror image artifact is placed",
		Options:     []string{"Shallower than the true reflector", "Deeper than the true reflector", "Lateral to the true reflector", "On top of the true reflector"},
		Answer:      1,
		Explanation: "The duplicate always appears deeper than the real structure, on the far side of the strong reflector.",
	},
	{
		ID: "artifacts-04", ModuleID: "artifacts", Topic: "artifacts.speed-error",
		Prompt:      "When sound travels through a medium slower than 1540 m/s, reflectors are displayed",
		Options:     []string{"Too shallow", "Too deep", "At the correct depth", "Laterally displaced"},
		Answer:      1,
		Explanation: "Echoes return late, and the system assumes 1540 m/s, so it places them too deep.",
	},
	{
		ID: "artifacts-05", ModuleID: "artifacts", Topic: "artifacts.lobes",
		Prompt:      "Grating lobes are associated with",
		Options:     []string{"Single-element transducers", "Array transducers", "Continuous wave Doppler", "M-mode"},
		Answer:      1,
		Explanation: "Grating lobes arise from the regular spacing of array elements; subdicing reduces them.",
	},

	// Safety
	{
		ID: "safety-01", ModuleID: "safety", Topic: "safety.intensities",
		Prompt:      "Which intensity is most relevant to tissue heating?",
		Options:     []string{"SPTA", "SATA", "SPPA", "SAPA"},
		Answer:      0,
		Explanation: "Spatial peak temporal average intensity best correlates with thermal bioeffects.",
	},
	{
		ID: "safety-02", ModuleID: "safety", Topic: "safety.thermal",
		Prompt:      "The thermal index estimates",
		Options:     []string{"Cavitation likelihood", "The maximum temperature rise in tissue", "Peak rarefactional pressure", "Output power in watts"},
		Answer:      1,
		Explanation: "TI approximates the worst-case temperature rise in degrees Celsius.",
	},
	{
		ID: "safety-03", ModuleID: "safety", Topic: "safety.mechanical",
		Prompt:      "The mechanical index increases with",
		Options:     []string{"Higher frequency", "Higher peak rarefactional pressure", "Lower output", "Longer wavelength only"},
		Answer:      1,
		Explanation: "MI = peak rarefactional pressure divided by the square root of frequency.",
	},
	{
		ID: "safety-04", ModuleID: "safety", Topic: "safety.alara",
		Prompt:      "To follow ALARA, the sonographer should first",
		Options:     []string{"Increase output power", "Increase receiver gain before output", "Lengthen scan time", "Disable TGC"},
		Answer:      1,
		Explanation: "Raising receiver gain improves the image without increasing patient exposure.",
	},

	// QA
	{
		ID: "qa-01", ModuleID: "qa", Topic: "qa.phantoms",
		Prompt:      "A tissue-equivalent phantom is designed to match soft tissue in",
		Options:     []string{"Color", "Propagation speed and attenuation", "Weight", "Temperature"},
		Answer:      1,
		Explanation: "Phantoms mimic the acoustic properties of tissue so system tests are meaningful.",
	},
	{
		ID: "qa-02", ModuleID: "qa", Topic: "qa.performance",
		Prompt:      "Dead zone is measured with",
		Options:     []string{"The shallowest pins of a phantom", "The deepest pins", "A Doppler string phantom", "A hydrophone"},
		Answer:      0,
		Explanation: "The dead zone is the region nearest the transducer where imaging is not possible.",
	},
	{
		ID: "qa-03", ModuleID: "qa", Topic: "qa.statistics",
		Prompt:      "Sensitivity describes the ability of a test to",
		Options:     []string{"Identify patients with disease", "Identify patients without disease", "Avoid false positives", "Measure flow"},
		Answer:      0,
		Explanation: "Sensitivity = true positives ÷ (true positives + false negatives).",
	},
}
