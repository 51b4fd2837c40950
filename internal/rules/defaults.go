package rules

// Defaults returns the built-in curated rule set. This is the shipped
// knowledge - deployments can replace or extend it with a YAML file.
func Defaults() *Tables {
	t := &Tables{
		WordMisspellings: map[string]string{
			// Modifier misspellings seen in scraped corpora
			"atmosheric":   "atmospheric",
			"athmospheric": "atmospheric",
			"atmopsheric":  "atmospheric",
			"agressive":    "aggressive",
			"psychadelic":  "psychedelic",
			"pyschedelic":  "psychedelic",
			"psychedellic": "psychedelic",
			"proggressive": "progressive",
			"progresive":   "progressive",
			"experimantal": "experimental",
			"experimetal":  "experimental",
			"symphonik":    "symphonic",
			"sinfonic":     "symphonic",
			"tecnical":     "technical",
			"techical":     "technical",
			"melodoc":      "melodic",
			"meldoic":      "melodic",
			"instrumantal": "instrumental",
			"instumental":  "instrumental",
			"ambiant":      "ambient",
			"alternitive":  "alternative",
			"alternativ":   "alternative",
			"brutual":      "brutal",
			"guttaral":     "guttural",

			// Genre word misspellings
			"electonic":  "electronic",
			"eletronic":  "electronic",
			"electronik": "electronic",
			"indsutrial": "industrial",
			"industral":  "industrial",
			"psychobily": "psychobilly",
			"rockabily":  "rockabilly",
			"regae":      "reggae",
			"raggae":     "reggae",
			"gothik":     "gothic",
			"grundge":    "grunge",
			"trash":      "thrash",
		},
		PhraseMisspellings: map[string]string{
			// Forms that only make sense corrected as a whole
			"drum n bass":    "drum and bass",
			"drum'n'bass":    "drum and bass",
			"drum n' bass":   "drum and bass",
			"dnb":            "drum and bass",
			"d&b":            "drum and bass",
			"rnb":            "r&b",
			"rhythm & blues": "r&b",
			"hiphop":         "hip hop",
			"synth pop":      "synthpop",
			"kraut rock":     "krautrock",
			"nwobhm":         "new wave of british heavy metal",

			// Transliteration variants
			"neue deutsche harte": "neue deutsche härte",
			"musique concrete":    "musique concrète",
		},
		SuffixCompounds: []string{
			"gaze", "core", "wave", "step", "tronica",
		},
		SuffixExceptions: []string{
			// Established two-word genres whose last word is a weld suffix
			"new wave",
			"no wave",
			"third wave",
		},
		HyphenCompounds: []string{
			"post metal",
			"post rock",
			"post punk",
			"post hardcore",
			"post grunge",
			"prog metal",
			"prog rock",
			"avant garde",
			"lo fi",
			"hi fi",
			"alt country",
			"alt rock",
			"nu disco",
			"trip hop",
		},
		Locations: []string{
			// Countries and nationality adjectives
			"norway", "norwegian", "sweden", "swedish", "finland", "finnish",
			"germany", "german", "france", "french", "england", "english",
			"british", "scotland", "scottish", "ireland", "irish",
			"japan", "japanese", "brazil", "brazilian", "canada", "canadian",
			"australia", "australian", "iceland", "icelandic",
			"poland", "polish", "greece", "greek", "italy", "italian",
			"spain", "spanish", "netherlands", "dutch", "belgium", "belgian",
			"russia", "russian", "ukraine", "ukrainian",
			"america", "american", "scandinavia", "scandinavian",

			// Cities and scenes
			"oslo", "bergen", "stockholm", "gothenburg", "helsinki", "tampere",
			"london", "manchester", "birmingham", "bristol", "glasgow",
			"berlin", "hamburg", "paris", "tokyo", "osaka",
			"new york", "los angeles", "san francisco", "bay area",
			"seattle", "portland", "chicago", "detroit", "memphis",
			"new orleans", "nashville", "tampa", "norfolk",
			"sao paulo", "rio de janeiro", "montreal", "toronto",
			"melbourne", "sydney",
		},
		LocationCodes: []string{
			"usa", "uk", "nyc", "la", "sf", "nz", "aus", "ger", "swe", "nor", "fin",
		},
		StyleModifiers: []string{
			"atmospheric", "melodic", "technical", "symphonic", "progressive",
			"experimental", "instrumental", "acoustic", "ambient", "brutal",
			"depressive", "aggressive", "epic", "dark", "raw", "minimal",
			"psychedelic", "gothic", "industrial", "old school", "modern",
			"traditional", "alternative", "underground", "guttural",
		},
		GenreRoots: []string{
			"metal", "rock", "punk", "jazz", "pop", "folk", "blues", "country",
			"electronic", "house", "techno", "trance", "ambient", "hop",
			"soul", "funk", "disco", "reggae", "ska", "grunge", "emo",
			"hardcore", "grindcore", "metalcore", "shoegaze", "drone", "doom",
			"sludge", "crust", "noise", "dub", "garage", "surf", "rockabilly",
			"swing", "r&b", "krautrock", "synthpop",
		},
		HierarchySeeds: map[string]string{
			// Lineages the substring heuristic cannot derive
			"grindcore":  "metal",
			"metalcore":  "metal",
			"doom":       "metal",
			"sludge":     "metal",
			"shoegaze":   "rock",
			"grunge":     "rock",
			"rockabilly": "rock",
			"emo":        "punk",
			"hardcore":   "punk",
			"crust":      "punk",
			"ska":        "reggae",
			"dub":        "reggae",
			"house":      "electronic",
			"techno":     "electronic",
			"trance":     "electronic",
			"synthpop":   "pop",
			"disco":      "pop",
			"funk":       "soul",
		},
	}
	t.finalize()
	return t
}
