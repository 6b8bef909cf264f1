package cardano

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/byron-wallet/pkg/explorer"
	"golang.org/x/sync/errgroup"
)

const addressSummaryPath = "/api/bulk/addresses/summary"

func (s *service) IsAnyAddressUsed(
	ctx context.Context, addresses []string,
) (bool, error) {
	summaries, err := s.getSummaries(ctx, addresses)
	if err != nil {
		return false, err
	}
	for _, summary := range summaries {
		if summary.TxNum > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) FilterUsedAddresses(
	ctx context.Context, addresses []string,
) (explorer.AddressSet, error) {
	summaries, err := s.getSummaries(ctx, addresses)
	if err != nil {
		return nil, err
	}

	// The summary history also lists counterparties, keep only the
	// requested addresses.
	requested := explorer.NewAddressSet(addresses...)
	used := explorer.NewAddressSet()
	for _, summary := range summaries {
		for _, tx := range summary.TxList {
			for _, entries := range [][]txEntry{tx.Outputs, tx.Inputs} {
				for _, entry := range entries {
					if requested.Has(entry.Address) {
						used[entry.Address] = struct{}{}
					}
				}
			}
		}
	}
	return used, nil
}

// getSummaries splits addresses into chunks of at most
// maxAddressesPerRequest and fetches their summaries concurrently.
func (s *service) getSummaries(
	ctx context.Context, addresses []string,
) ([]addressSummary, error) {
	if len(addresses) <= 0 {
		return nil, nil
	}

	chunks := chunk(addresses, s.maxAddressesPerRequest)
	summaries := make([]addressSummary, len(chunks))

	eg, ctx := errgroup.WithContext(ctx)
	for i := range chunks {
		i := i
		eg.Go(func() error {
			right, err := s.post(ctx, addressSummaryPath, chunks[i])
			if err != nil {
				return err
			}
			if err := json.Unmarshal(right, &summaries[i]); err != nil {
				return fmt.Errorf("failed to parse address summary: %w", err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Debugf(
		"fetched summaries of %d addresses in %d requests",
		len(addresses), len(chunks),
	)
	return summaries, nil
}

func chunk(addresses []string, size int) [][]string {
	chunks := make([][]string, 0, (len(addresses)+size-1)/size)
	for start := 0; start < len(addresses); start += size {
		end := start + size
		if end > len(addresses) {
			end = len(addresses)
		}
		chunks = append(chunks, addresses[start:end])
	}
	return chunks
}
