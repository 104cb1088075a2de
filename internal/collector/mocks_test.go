package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/golstats/match-predictor/internal/models"
)

// MockFetcher serves fixed pages by URL and records every request.
type MockFetcher struct {
	Pages     map[string]string
	FetchFunc func(ctx context.Context, url string) (*goquery.Document, error)

	mu       sync.Mutex
	Requests []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, url)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	body, ok := m.Pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// MockSink records every batch it receives.
type MockSink struct {
	WriteFunc func(ctx context.Context, records []models.MatchRecord) error
	Batches   [][]models.MatchRecord
}

func (m *MockSink) Write(ctx context.Context, records []models.MatchRecord) error {
	if m.WriteFunc != nil {
		if err := m.WriteFunc(ctx, records); err != nil {
			return err
		}
	}
	m.Batches = append(m.Batches, append([]models.MatchRecord(nil), records...))
	return nil
}

func (m *MockSink) Total() int {
	n := 0
	for _, b := range m.Batches {
		n += len(b)
	}
	return n
}

// MockPgCopier captures statements and copied rows.
type MockPgCopier struct {
	Statements []string
	Table      pgx.Identifier
	Columns    []string
	Rows       [][]any
}

func (m *MockPgCopier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.Statements = append(m.Statements, sql)
	return pgconn.CommandTag{}, nil
}

func (m *MockPgCopier) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	m.Table = tableName
	m.Columns = columnNames
	var n int64
	for rowSrc.Next() {
		values, err := rowSrc.Values()
		if err != nil {
			return n, err
		}
		m.Rows = append(m.Rows, values)
		n++
	}
	return n, rowSrc.Err()
}

const testBase = "https://gol.gg"

func gamePage(blue, red string) string {
	return fmt.Sprintf(`<html><body>
<div class="col-12 col-sm-7"><a href="#">Test Cup</a> (EUW)</div>
<div class="col-12 col-sm-5 text-right">2025-03-01</div>
<div class="col-3 text-right">v15.4</div>
<div class="col-6 text-center"><h1>28:10</h1></div>
<div class="col-12 blue-line-header"><a href="#">%s</a> - WIN</div>
<div class="col-12 red-line-header"><a href="#">%s</a> - LOSS</div>
</body></html>`, blue, red)
}

func fullStatsPage(champions int) string {
	var sb strings.Builder
	sb.WriteString(`<table><thead><tr><th></th>`)
	for i := 0; i < champions; i++ {
		fmt.Fprintf(&sb, `<th><img alt="Champ%d"></th>`, i)
	}
	sb.WriteString(`</tr></thead><tbody>`)
	for _, label := range []string{"Player", "Role", "Kills"} {
		fmt.Fprintf(&sb, `<tr><td>%s</td>`, label)
		for i := 0; i < champions; i++ {
			fmt.Fprintf(&sb, `<td>%s%d</td>`, label, i)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)
	return sb.String()
}

// addGame registers both pages of a well-formed game.
func addGame(pages map[string]string, id int) {
	pages[fmt.Sprintf("%s/game/stats/%d/page-game/", testBase, id)] = gamePage("Blue Team", "Red Team")
	pages[fmt.Sprintf("%s/game/stats/%d/page-fullstats/", testBase, id)] = fullStatsPage(10)
}
