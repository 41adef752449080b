package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/infrastructure/session"
	"translayer/internal/ports/output"
)

type fakeLister struct {
	mu     sync.Mutex
	tables []string
	err    error
	calls  int
	onList func() // runs after the tables were read
}

func (f *fakeLister) ListTables(context.Context) ([]string, error) {
	f.mu.Lock()
	f.calls++
	tables, err, hook := append([]string(nil), f.tables...), f.err, f.onList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// gateFirstCall returns a hook that blocks its first caller until release is
// closed; started is closed once that caller is parked.
func gateFirstCall() (hook func(), started, release chan struct{}) {
	started, release = make(chan struct{}), make(chan struct{})
	var first atomic.Bool
	hook = func() {
		if first.CompareAndSwap(false, true) {
			close(started)
			<-release
		}
	}
	return hook, started, release
}

func (f *fakeLister) set(tables ...string) {
	f.mu.Lock()
	f.tables = tables
	f.mu.Unlock()
}

type fakeLocales struct {
	codes []string
	err   error
}

func (f *fakeLocales) ListEnabled(context.Context) ([]string, error) {
	return f.codes, f.err
}

// memTranslations keeps one slice of records per locale; a locale without an
// entry behaves like a missing table.
type memTranslations struct {
	mu         sync.Mutex
	stores     map[string][]entities.Translation
	nextID     int64
	loads      int
	onLoad     func()
	deleteErrs map[string]error
	upsertErrs map[string]error // by related_field
}

var _ output.TranslationRepository = (*memTranslations)(nil)

func newMemTranslations(locales ...string) *memTranslations {
	m := &memTranslations{
		stores:     map[string][]entities.Translation{},
		deleteErrs: map[string]error{},
		upsertErrs: map[string]error{},
	}
	for _, l := range locales {
		m.stores[l] = nil
	}
	return m
}

func (m *memTranslations) LoadAll(_ context.Context, locale string) ([]entities.Translation, error) {
	m.mu.Lock()
	m.loads++
	records, ok := m.stores[locale]
	out := append([]entities.Translation(nil), records...)
	hook := m.onLoad
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, fmt.Errorf("load %s: %w", locale, domain.ErrStoreMissing)
	}
	return out, nil
}

func (m *memTranslations) Upsert(_ context.Context, locale string, t entities.Translation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.upsertErrs[t.RelatedField]; err != nil {
		return err
	}
	records, ok := m.stores[locale]
	if !ok {
		return fmt.Errorf("upsert %s: %w", locale, domain.ErrStoreMissing)
	}
	for i, r := range records {
		if r.RelatedTable == t.RelatedTable && r.RelatedField == t.RelatedField && r.RelatedID == t.RelatedID {
			records[i].Text = t.Text
			return nil
		}
	}
	m.nextID++
	t.ID = m.nextID
	m.stores[locale] = append(records, t)
	return nil
}

func (m *memTranslations) DeleteForRow(_ context.Context, locale, table, rowID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.deleteErrs[locale]; err != nil {
		return 0, err
	}
	records, ok := m.stores[locale]
	if !ok {
		return 0, fmt.Errorf("delete %s: %w", locale, domain.ErrStoreMissing)
	}
	kept := records[:0]
	var n int64
	for _, r := range records {
		if r.RelatedTable == table && r.RelatedID == rowID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.stores[locale] = kept
	return n, nil
}

func (m *memTranslations) records(locale string) []entities.Translation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entities.Translation(nil), m.stores[locale]...)
}

func (m *memTranslations) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type memPosts struct {
	mu     sync.Mutex
	rows   map[int64]entities.Post
	nextID int64
	lists  []output.PostListOptions
}

var _ output.PostRepository = (*memPosts)(nil)

func newMemPosts(posts ...entities.Post) *memPosts {
	m := &memPosts{rows: map[int64]entities.Post{}}
	for _, p := range posts {
		m.rows[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *memPosts) Create(_ context.Context, post *entities.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	post.ID = m.nextID
	m.rows[post.ID] = *post
	return nil
}

func (m *memPosts) FindByID(_ context.Context, id int64) (*entities.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get post %d: %w", id, domain.ErrPostNotFound)
	}
	return &p, nil
}

func (m *memPosts) List(_ context.Context, opts output.PostListOptions) ([]*entities.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, opts)
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entities.Post, 0, len(ids))
	for _, id := range ids {
		p := m.rows[id]
		out = append(out, &p)
	}
	return out, nil
}

func (m *memPosts) Update(_ context.Context, post *entities.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[post.ID]; !ok {
		return fmt.Errorf("update post %d: %w", post.ID, domain.ErrPostNotFound)
	}
	stored := *post
	stored.Overlay = entities.Overlay{}
	m.rows[post.ID] = stored
	return nil
}

func (m *memPosts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete post %d: %w", id, domain.ErrPostNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memPosts) base(id int64) entities.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

// fixture wires the application components over in-memory ports with
// enabled locales en (default) and fr.
type fixture struct {
	lister  *fakeLister
	trans   *memTranslations
	posts   *memPosts
	tables  *TableRegistry
	store   *TranslationStore
	locales *LocaleDirectory
	engine  *OverlayEngine
	svc     *PostService
}

func newFixture(posts ...entities.Post) *fixture {
	f := &fixture{
		lister: &fakeLister{tables: []string{"locales", "posts", "translations_fr"}},
		trans:  newMemTranslations("fr"),
		posts:  newMemPosts(posts...),
	}
	f.tables = NewTableRegistry(f.lister)
	f.store = NewTranslationStore(f.trans)
	f.locales = NewLocaleDirectory(&fakeLocales{codes: []string{"en", "fr"}}, session.Holder{}, "en", "en")
	f.engine = NewOverlayEngine(f.locales, f.tables, f.store, nil)
	f.svc = NewPostService(f.posts, f.engine)
	return f
}

func inLocale(locale string) context.Context {
	return session.NewContext(context.Background(), session.New(locale))
}

func strPtr(s string) *string { return &s }
