package rxnormparser

import (
	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// Compile-time check to ensure RxNormParser implements Parser interface
var _ interfaces.Parser = (*RxNormParser)(nil)

// RxNormParser implements the Parser interface over a local RRF directory.
type RxNormParser struct {
	dir string
}

// NewRxNormParser creates a parser reading from the given release directory.
func NewRxNormParser(dir string) *RxNormParser {
	return &RxNormParser{dir: dir}
}

// ParseAll implements the Parser interface
func (p *RxNormParser) ParseAll() ([]entities.ConceptRecord, []entities.AttributeTuple, error) {
	return ParseAll(p.dir)
}
