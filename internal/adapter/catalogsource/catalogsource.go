package catalogsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dottech/storefront/internal/core/port"
)

var _ port.CatalogFetcher = (*Source)(nil)

const fetchTimeout = 10 * time.Second

// A Source reads the raw product records from the fixed external
// catalog resource: an HTTP(S) URL or a local file path. The records
// are decoded but not normalized; field naming is resolved by the
// catalog service.
type Source struct {
	location string
	client   *http.Client
}

func New(location string) Source {
	return Source{
		location: location,
		client:   &http.Client{Timeout: fetchTimeout},
	}
}

func (s Source) Fetch(ctx context.Context) ([]port.RawRecord, error) {
	const op = "Source.Fetch"

	data, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rs []port.RawRecord
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%s: failed to decode records: %w", op, err)
	}
	return rs, nil
}

func (s Source) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(s.location, "http://") &&
		!strings.HasPrefix(s.location, "https://") {
		return os.ReadFile(s.location)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.location, nil,
	)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %s", res.Status)
	}

	return io.ReadAll(res.Body)
}
