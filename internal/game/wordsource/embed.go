package wordsource

import _ "embed"

// Embedded defaults keep the server runnable with no data files configured,
// the same fallback posture the rest of the content loaders take.

//go:embed data/dictionary.txt
var embeddedDictionary string

//go:embed data/source_words.txt
var embeddedSourceWords string

//go:embed data/riddles.yaml
var embeddedRiddles string
