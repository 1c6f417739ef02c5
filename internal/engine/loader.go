package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"salarydash/internal/models"
)

// Column names of the source CSV.
const (
	colYear      = "ano"
	colSeniority = "senioridade"
	colContract  = "contrato"
	colSize      = "tamanho_empresa"
	colRole      = "cargo"
	colRemote    = "remoto"
	colUSD       = "usd"
	colCountry   = "residencia_iso3"
)

// RequiredColumns lists the header names a dataset must carry.
var RequiredColumns = []string{
	colYear, colSeniority, colContract, colSize, colRole, colRemote, colUSD, colCountry,
}

// RetrievalError reports a dataset that could not be fetched or parsed.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve dataset %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ErrMissingColumns is wrapped by RetrievalError when the header lacks a
// required column.
var ErrMissingColumns = errors.New("missing required columns")

// IsRemote reports whether source names an HTTP(S) resource rather than a path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads the dataset from a URL or a local path.
func Load(ctx context.Context, client *http.Client, source string) (*ColumnStore, error) {
	if IsRemote(source) {
		return Fetch(ctx, client, source)
	}
	return LoadFile(source)
}

// Fetch performs a single GET against url and parses the body. There is no
// retry.
func Fetch(ctx context.Context, client *http.Client, url string) (*ColumnStore, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RetrievalError{Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	store, err := Parse(resp.Body)
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: err}
	}
	return store, nil
}

// LoadFile parses a CSV file from disk.
func LoadFile(path string) (*ColumnStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &RetrievalError{Source: path, Err: err}
	}
	defer f.Close()

	store, err := Parse(f)
	if err != nil {
		return nil, &RetrievalError{Source: path, Err: err}
	}
	return store, nil
}

// Parse decodes a salary CSV. Column order is free and extra columns are
// ignored; rows with a non-numeric year or salary are counted in Skipped.
func Parse(r io.Reader) (*ColumnStore, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty dataset")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}
	// Rows shorter than the widest required column are malformed.
	width := 0
	for _, i := range idx {
		if i+1 > width {
			width = i + 1
		}
	}

	b := newStoreBuilder(1024)
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && pe.Err == csv.ErrFieldCount {
				skipped++
				continue
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(row) < width {
			skipped++
			continue
		}

		year, ok := parseYear(row[idx[colYear]])
		if !ok {
			skipped++
			continue
		}
		usd, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colUSD]]), 64)
		if err != nil || math.IsNaN(usd) || math.IsInf(usd, 0) {
			skipped++
			continue
		}

		b.append(models.Record{
			Year:          year,
			Seniority:     strings.TrimSpace(row[idx[colSeniority]]),
			ContractType:  strings.TrimSpace(row[idx[colContract]]),
			CompanySize:   strings.TrimSpace(row[idx[colSize]]),
			RoleTitle:     strings.TrimSpace(row[idx[colRole]]),
			RemoteMode:    strings.TrimSpace(row[idx[colRemote]]),
			ResidenceISO3: strings.TrimSpace(row[idx[colCountry]]),
			SalaryUSD:     usd,
		})
	}

	store := b.finish()
	store.Skipped = skipped
	return store, nil
}

func indexColumns(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, c := range RequiredColumns {
		i, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseYear accepts "2023" as well as float renderings such as "2023.0".
// Years must fit the int32 column.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < math.MinInt32 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
