// Package rxnormparser reads an RxNorm full-release directory (RRF files)
// into the in-memory concept and attribute tables the enrichment pipeline
// consumes. RxNorm releases are license-gated downloads, so the parser works
// off a local directory rather than fetching anything itself.
package rxnormparser

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// ParseAll reads RXNCONSO.RRF and RXNSAT.RRF from dir concurrently and
// returns the filtered concept rows and attribute tuples.
func ParseAll(dir string) ([]entities.ConceptRecord, []entities.AttributeTuple, error) {
	var concepts []entities.ConceptRecord
	var attributes []entities.AttributeTuple

	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		concepts, err = makeConcepts(dir)
		return err
	})
	eg.Go(func() error {
		var err error
		attributes, err = makeAttributes(dir)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to parse RxNorm release: %w", err)
	}

	fmt.Printf("Number of concepts to process: %d\n", len(concepts))
	fmt.Printf("Number of attribute tuples to process: %d\n", len(attributes))

	logging.Info("RxNorm release parsed successfully",
		"concepts", len(concepts),
		"attributes", len(attributes))

	return concepts, attributes, nil
}
