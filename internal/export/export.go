package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srliao/wfcalc/internal/parse"
	"github.com/srliao/wfcalc/pkg/combat"
	"github.com/ulikunitz/xz/lzma"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultIndexURL   = "https://origin.warframe.com/PublicExport/index_en.txt.lzma"
	DefaultContentURL = "http://content.warframe.com/PublicExport/Manifest/"
)

//Client talks to the public export CDN
type Client struct {
	Log        *zap.SugaredLogger
	IndexURL   string
	ContentURL string
	Limit      int

	http *http.Client
}

func NewClient(indexURL, contentURL string, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	if contentURL == "" {
		contentURL = DefaultContentURL
	}
	if !strings.HasSuffix(contentURL, "/") {
		contentURL += "/"
	}
	return &Client{
		Log:        log,
		IndexURL:   indexURL,
		ContentURL: contentURL,
		Limit:      4,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

//Index maps a category such as Upgrades or Weapons to its manifest file
type Index map[string]string

func (i Index) Categories() []string {
	var r []string
	for k := range i {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

//ParseIndex reads the decompressed index. Every line looks like
//ExportUpgrades_en.json!00_abcdef
func ParseIndex(r io.Reader) (Index, error) {
	idx := make(Index)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Export") {
			return nil, fmt.Errorf("unexpected index line %q", line)
		}
		category := strings.TrimPrefix(line, "Export")
		if i := strings.IndexByte(category, '_'); i >= 0 {
			category = category[:i]
		}
		idx[category] = line
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return idx, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("export status %d for %v", resp.StatusCode, url)
	}
	return resp.Body, nil
}

//Index fetches and decompresses the manifest index
func (c *Client) Index(ctx context.Context) (Index, error) {
	body, err := c.get(ctx, c.IndexURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r, err := lzma.NewReader(body)
	if err != nil {
		return nil, fmt.Errorf("lzma index: %w", err)
	}
	idx, err := ParseIndex(r)
	if err != nil {
		return nil, err
	}
	c.Log.Debugw("export index loaded", "categories", idx.Categories())
	return idx, nil
}

//Manifests fetches the manifests of the given categories, at most Limit at a
//time
func (c *Client) Manifests(ctx context.Context, idx Index, categories ...string) (map[string][]byte, error) {
	var mu sync.Mutex
	out := make(map[string][]byte, len(categories))

	for _, cat := range categories {
		if _, ok := idx[cat]; !ok {
			return nil, fmt.Errorf("category %v is not in the export index", cat)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if c.Limit > 0 {
		g.SetLimit(c.Limit)
	}
	for _, cat := range categories {
		cat := cat
		file := idx[cat]
		g.Go(func() error {
			body, err := c.get(ctx, c.ContentURL+file)
			if err != nil {
				return fmt.Errorf("manifest %v: %w", cat, err)
			}
			defer body.Close()
			data, err := io.ReadAll(body)
			if err != nil {
				return fmt.Errorf("manifest %v: %w", cat, err)
			}
			c.Log.Debugw("manifest fetched", "category", cat, "bytes", len(data))
			mu.Lock()
			out[cat] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

//Upgrades fetches the index and decodes the upgrade manifest
func (c *Client) Upgrades(ctx context.Context) ([]Upgrade, error) {
	idx, err := c.Index(ctx)
	if err != nil {
		return nil, err
	}
	m, err := c.Manifests(ctx, idx, "Upgrades")
	if err != nil {
		return nil, err
	}
	return DecodeUpgrades(m["Upgrades"])
}

type upgradeManifest struct {
	ExportUpgrades []Upgrade `json:"ExportUpgrades"`
}

//DecodeUpgrades decodes an ExportUpgrades manifest
func DecodeUpgrades(data []byte) ([]Upgrade, error) {
	var m upgradeManifest
	err := json.Unmarshal(escapeControl(data), &m)
	if err != nil {
		return nil, fmt.Errorf("decode upgrades: %w", err)
	}
	return m.ExportUpgrades, nil
}

//escapeControl escapes raw line breaks and tabs inside strings; the export
//files are not always strict json
func escapeControl(data []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(data))
	in, esc := false, false
	for _, c := range data {
		switch {
		case esc:
			esc = false
		case in && c == '\\':
			esc = true
		case c == '"':
			in = !in
		case in && c == '\n':
			b.WriteString(`\n`)
			continue
		case in && c == '\r':
			b.WriteString(`\r`)
			continue
		case in && c == '\t':
			b.WriteString(`\t`)
			continue
		}
		b.WriteByte(c)
	}
	return b.Bytes()
}

//ToLibrary turns upgrades into library mods using their max rank stats.
//Upgrades without a single modelled effect are skipped, as are repeated names
func ToLibrary(ups []Upgrade, log *zap.SugaredLogger) []combat.Mod {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	sorted := make([]Upgrade, len(ups))
	copy(sorted, ups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UniqueName < sorted[j].UniqueName
	})

	seen := make(map[string]bool)
	var mods []combat.Mod
	for _, u := range sorted {
		stats := u.MaxRank()
		if len(stats) == 0 || u.Name == "" {
			continue
		}
		effects, unknown := parse.Stats(stats)
		if len(unknown) > 0 {
			log.Debugw("ignoring stats", "mod", u.Name, "stats", unknown)
		}
		if len(effects) == 0 {
			continue
		}
		if seen[u.Name] {
			log.Debugw("skipping repeated mod name", "mod", u.Name, "unique", u.UniqueName)
			continue
		}
		seen[u.Name] = true
		mods = append(mods, combat.Mod{Name: u.Name, Effects: effects})
	}
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Name < mods[j].Name
	})
	log.Infow("converted upgrades", "upgrades", len(ups), "mods", len(mods))
	return mods
}
