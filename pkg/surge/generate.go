package surge

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Word lists for generated preview domains, embedded so the binary
// needs no data files. One word per line.

//go:embed dict/adjectives.txt
var adjectiveWords string

//go:embed dict/nouns.txt
var nounWords string

//go:embed dict/verbs.txt
var verbWords string

var (
	wordLists struct {
		adjectives []string
		nouns      []string
		verbs      []string
	}
	wordListsOnce sync.Once
)

func loadWordLists() {
	wordLists.adjectives = wordsFrom(adjectiveWords)
	wordLists.nouns = wordsFrom(nounWords)
	wordLists.verbs = wordsFrom(verbWords)
}

// wordsFrom splits an embedded list into trimmed, non-empty lines.
func wordsFrom(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w := strings.TrimSpace(line); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// GenerateDomain returns a random, memorable `.surge.sh` domain name
// of the form word-word or, with withNumber, word-word-n. Generated
// names are suggestions only; whether one is free is decided by the
// server when it is first published to.
func GenerateDomain(withNumber bool) string {
	base := chooseWords()
	if withNumber {
		return fmt.Sprintf("%s-%d.surge.sh", base, rand.Intn(10000))
	}
	return base + ".surge.sh"
}

// chooseWords picks a two-word hyphenated identifier, mixing the
// lists so consecutive names do not all read adjective-noun.
func chooseWords() string {
	wordListsOnce.Do(loadWordLists)

	pick := func(list []string) string {
		return list[rand.Intn(len(list))]
	}
	switch rand.Intn(3) {
	case 0:
		return pick(wordLists.adjectives) + "-" + pick(wordLists.nouns)
	case 1:
		return pick(wordLists.verbs) + "-" + pick(wordLists.nouns)
	default:
		return pick(wordLists.adjectives) + "-" + pick(wordLists.verbs)
	}
}
