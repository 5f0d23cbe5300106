package geomet

import (
	"context"
	"math"
)

// Unbounded disables the item cap. Callers must opt in explicitly; every CLI
// path passes a finite cap.
const Unbounded = -1

// FetchAll pages through a collection until the item cap is reached or the
// server is exhausted. Features accumulate in server order, never deduplicated.
//
// Termination, in order of precedence per page:
//
//   - a page with zero features, or fewer features than requested, ends the
//     run as natural exhaustion even if the server still advertises a next
//     link (a server may misreport availability)
//   - reaching the cap marks the result truncated when the server reported
//     more matches available
//   - no next link ends the run as natural exhaustion
//
// Any fetch error aborts the run and is propagated unchanged; accumulated
// features are discarded rather than returned as silent partial data.
func (c *Client) FetchAll(ctx context.Context, collectionID string, spec FilterSpec, maxItems int) (*FetchResult, error) {
	remaining := maxItems
	if maxItems == Unbounded {
		remaining = math.MaxInt
	} else if maxItems <= 0 {
		return nil, &InvalidFilterError{Field: "max-items", Reason: "item cap must be positive"}
	}

	pageSize := spec.Limit
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > PageCeiling {
		pageSize = PageCeiling
	}

	result := &FetchResult{}
	offset := spec.Offset

	for remaining > 0 {
		limit := pageSize
		if remaining < limit {
			limit = remaining
		}

		req := spec
		req.Limit = limit
		req.Offset = offset

		page, err := c.FetchPage(ctx, collectionID, req)
		if err != nil {
			return nil, err
		}
		result.Requests++

		n := len(page.Features)
		if n == 0 {
			break
		}

		result.Features = append(result.Features, page.Features...)
		remaining -= n
		offset += n

		if n < limit {
			// Short page: exhausted regardless of the next link.
			break
		}
		if remaining <= 0 {
			result.Truncated = page.HasMore
			break
		}
		if !page.HasMore {
			break
		}

		c.logger.Info("fetching next page", "collection", collectionID, "items_so_far", len(result.Features))

		if c.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-c.clock.After(c.pageDelay):
			}
		}
	}

	return result, nil
}
