package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const defaultMinTermLength = 2

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "if", "in", "into", "is", "it",
	"of", "on", "or", "that", "the", "this", "to", "was", "with",
}

type DuplicatePageError struct {
	Path string
}

func (e *DuplicatePageError) Error() string {
	return fmt.Sprintf("the page '%s' was enumerated more than once", e.Path)
}

type Document struct {
	Key         string `json:"key"`
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Index is the search artifact. Terms maps every term to the ascending offsets of the documents
// containing it.
type Index struct {
	Documents []Document       `json:"documents"`
	Terms     map[string][]int `json:"terms"`
}

type Indexer struct {
	minTermLength int
	stopWords     map[string]struct{}
}

func NewIndexer() *Indexer {
	return &Indexer{
		minTermLength: defaultMinTermLength,
		stopWords:     lo.SliceToMap(defaultStopWords, func(w string) (string, struct{}) { return w, struct{}{} }),
	}
}

// Index consumes the enumeration once. Titles and descriptions are indexed along with the text.
func (i *Indexer) Index(pages []Page) (*Index, error) {
	idx := &Index{
		Documents: make([]Document, 0, len(pages)),
		Terms:     make(map[string][]int),
	}

	seen := make(map[string]struct{}, len(pages))
	for offset, page := range pages {
		if _, ok := seen[page.Path]; ok {
			return nil, &DuplicatePageError{Path: page.Path}
		}
		seen[page.Path] = struct{}{}

		idx.Documents = append(idx.Documents, Document{
			Key:         PageKey(page.Path),
			Path:        page.Path,
			Title:       page.Title,
			Description: page.Description,
		})

		terms := lo.Uniq(i.Tokenize(strings.Join([]string{page.Title, page.Description, page.Text}, " ")))
		for _, term := range terms {
			idx.Terms[term] = append(idx.Terms[term], offset)
		}
	}

	return idx, nil
}

// Tokenize lower-cases the text and splits it on anything that is not a letter or digit, dropping
// stop words and terms shorter than the minimum length.
func (i *Indexer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return lo.Filter(fields, func(term string, _ int) bool {
		if len([]rune(term)) < i.minTermLength {
			return false
		}
		_, stop := i.stopWords[term]
		return !stop
	})
}

// Search returns the documents containing every term of the query, in index order.
func (idx *Index) Search(indexer *Indexer, query string) []Document {
	terms := lo.Uniq(indexer.Tokenize(query))
	if len(terms) == 0 {
		return []Document{}
	}

	matches := idx.Terms[terms[0]]
	for _, term := range terms[1:] {
		matches = lo.Intersect(matches, idx.Terms[term])
	}

	sorted := append([]int(nil), matches...)
	sort.Ints(sorted)

	return lo.Map(sorted, func(offset int, _ int) Document {
		return idx.Documents[offset]
	})
}

// PageKey is a stable identifier for a page path, identical across builds.
func PageKey(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(path)).String()
}
