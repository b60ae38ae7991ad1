package monte

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/srliao/wfcalc/pkg/combat"
	"go.uber.org/zap"
)

//Searcher ranks every combination of mods from a pool against one weapon and
//target
type Searcher struct {
	Log *zap.SugaredLogger
	//MaxBuilds caps how many combinations a single search may evaluate
	MaxBuilds int

	base  map[combat.DamageType]float64
	enemy combat.Enemy
	fixed []combat.Mod
	pool  []combat.Mod
}

//Build is one evaluated combination
type Build struct {
	Mods  []string
	Total float64
}

type SearchResult struct {
	Top      []Build
	Count    int
	Hist     []float64
	BinStart float64
	Min      float64
	Max      float64
	Mean     float64
	SD       float64
}

//DefaultMaxBuilds is the combination cap New sets
const DefaultMaxBuilds = 1 << 22

//New builds a searcher from a calc. Mods already on the calc are kept in every
//build; pool holds the candidate names to pick from
func New(c *combat.Calc, lib *combat.Library, pool []string) (*Searcher, error) {
	s := &Searcher{
		Log:       c.Log,
		MaxBuilds: DefaultMaxBuilds,
		base:      c.Weapon.Damage,
		enemy:     c.Enemy,
		fixed:     c.Mods,
	}
	if s.Log == nil {
		s.Log = zap.NewNop().Sugar()
	}

	fixed := make(map[string]bool)
	for _, m := range c.Mods {
		fixed[m.Name] = true
	}
	seen := make(map[string]bool)
	for _, n := range pool {
		if fixed[n] || seen[n] {
			s.Log.Debugf("skipping %v, already in the build or pool", n)
			continue
		}
		seen[n] = true
		m, ok := lib.Get(n)
		if !ok {
			return nil, fmt.Errorf("%w: %v", combat.ErrUnknownMod, n)
		}
		s.pool = append(s.pool, m)
	}
	return s, nil
}

func (s *Searcher) PoolSize() int {
	return len(s.pool)
}

type job struct {
	picks []int
}

type result struct {
	picks []int
	total float64
}

//Search evaluates every k sized combination of the pool with w workers. The
//top n builds are kept and totals are binned by b
func (s *Searcher) Search(k, n, w int, b float64) (SearchResult, error) {
	r := SearchResult{}
	if k < 0 || k > len(s.pool) {
		return r, fmt.Errorf("cannot pick %v mods from a pool of %v", k, len(s.pool))
	}
	if n < 0 {
		return r, fmt.Errorf("cannot keep %v builds", n)
	}
	if w < 1 {
		return r, errors.New("need at least one worker")
	}
	if b <= 0 {
		return r, errors.New("bin size must be positive")
	}

	count, ok := binomial(len(s.pool), k)
	if !ok || count > s.MaxBuilds {
		return r, fmt.Errorf("picking %v mods from a pool of %v gives more than %v builds", k, len(s.pool), s.MaxBuilds)
	}
	s.Log.Debugw("starting build search", "pool", len(s.pool), "k", k, "builds", count, "w", w)

	req := make(chan job)
	resp := make(chan result, w)
	done := make(chan bool)
	for i := 0; i < w; i++ {
		go s.worker(req, resp, done)
	}

	//feed every combination to the workers
	go func() {
		combinations(len(s.pool), k, func(picks []int) {
			req <- job{picks: picks}
		})
	}()

	var sum, ss float64
	data := make([]result, 0, count)
	r.Min = math.MaxFloat64
	r.Max = -math.MaxFloat64

	for i := 0; i < count; i++ {
		v := <-resp
		data = append(data, v)
		sum += v.total
		if v.total < r.Min {
			r.Min = v.total
		}
		if v.total > r.Max {
			r.Max = v.total
		}
	}
	close(done)

	r.Count = count
	r.Mean = sum / float64(count)
	r.BinStart = math.Floor(r.Min/b) * b
	numBin := int(math.Floor((r.Max-r.BinStart)/b)) + 1
	r.Hist = make([]float64, numBin)

	for _, v := range data {
		ss += (v.total - r.Mean) * (v.total - r.Mean)
		r.Hist[int((v.total-r.BinStart)/b)]++
	}
	r.SD = math.Sqrt(ss / float64(count))

	builds := make([]Build, 0, len(data))
	for _, v := range data {
		builds = append(builds, s.build(v))
	}
	sort.Slice(builds, func(i, j int) bool {
		if builds[i].Total != builds[j].Total {
			return builds[i].Total > builds[j].Total
		}
		return less(builds[i].Mods, builds[j].Mods)
	})
	if n < len(builds) {
		builds = builds[:n]
	}
	r.Top = builds

	s.Log.Infow("build search done", "builds", count, "best", r.Max, "mean", r.Mean)
	return r, nil
}

func (s *Searcher) worker(req chan job, resp chan result, done chan bool) {
	for {
		select {
		case j := <-req:
			mods := make([]combat.Mod, 0, len(s.fixed)+len(j.picks))
			mods = append(mods, s.fixed...)
			for _, p := range j.picks {
				mods = append(mods, s.pool[p])
			}
			//workers don't log per hit
			res := combat.Resolve(s.base, mods, s.enemy, nil)
			resp <- result{picks: j.picks, total: res.Total}
		case <-done:
			return
		}
	}
}

func (s *Searcher) build(v result) Build {
	b := Build{Total: v.total}
	for _, m := range s.fixed {
		b.Mods = append(b.Mods, m.Name)
	}
	var picked []string
	for _, p := range v.picks {
		picked = append(picked, s.pool[p].Name)
	}
	sort.Strings(picked)
	b.Mods = append(b.Mods, picked...)
	return b
}

//combinations calls f with every k sized subset of [0, n) in lexicographic
//order. f receives its own copy
func combinations(n, k int, f func([]int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		c := make([]int, k)
		copy(c, idx)
		f(c)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

//binomial returns n choose k; ok is false if it does not fit in an int
func binomial(n, k int) (int, bool) {
	if k < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		m := n - k + i
		if r > math.MaxInt/m {
			return 0, false
		}
		r = r * m / i
	}
	return r, true
}

func less(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
