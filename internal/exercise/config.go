package exercise

// Config tunes deck generation. Zero values are replaced by DefaultConfig values.
type Config struct {
	MaxExercises       int
	MinSentenceLength  int
	AttemptMultiplier  int
	BlankMarker        string
	FillerWords        []string
	FillerTranslations []string
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxExercises:      10,
		MinSentenceLength: 10,
		AttemptMultiplier: 20,
		BlankMarker:       "_____",
		FillerWords: []string{
			"apple", "book", "friend", "school", "time", "water", "happy", "work", "house", "music",
		},
		FillerTranslations: []string{
			"蘋果", "書", "朋友", "學校", "時間", "水", "快樂", "工作", "房子", "音樂",
		},
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxExercises <= 0 {
		c.MaxExercises = def.MaxExercises
	}
	if c.MinSentenceLength < 0 {
		c.MinSentenceLength = def.MinSentenceLength
	}
	if c.AttemptMultiplier <= 0 {
		c.AttemptMultiplier = def.AttemptMultiplier
	}
	if c.BlankMarker == "" {
		c.BlankMarker = def.BlankMarker
	}
	if len(c.FillerWords) == 0 {
		c.FillerWords = def.FillerWords
	}
	if len(c.FillerTranslations) == 0 {
		c.FillerTranslations = def.FillerTranslations
	}
	return c
}
