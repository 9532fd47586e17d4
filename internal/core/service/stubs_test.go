package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

var errStore = errors.New("store unavailable")

// ---- users ----

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = r.nextID
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) MarkEmailVerified(_ context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsEmailVerified = true
	return nil
}

// ---- sessions ----

type stubSessionRepo struct {
	sessions map[string]*domain.Session
	findErr  error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) error {
	c := *s
	r.sessions[s.Token] = &c
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, token string) (*domain.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *stubSessionRepo) DeleteAllForUser(_ context.Context, userID int64) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

// ---- notifier / dedup ----

type stubNotifier struct {
	sent []domain.Notification
}

func (n *stubNotifier) Notify(msg domain.Notification) { n.sent = append(n.sent, msg) }

type stubDedup struct {
	seen     map[string]bool
	claimErr error
	released []string
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func (d *stubDedup) Claim(_ context.Context, scope, key string) (bool, error) {
	if d.claimErr != nil {
		return false, d.claimErr
	}
	k := scope + ":" + key
	if d.seen[k] {
		return false, nil
	}
	d.seen[k] = true
	return true, nil
}

func (d *stubDedup) Release(_ context.Context, scope, key string) error {
	k := scope + ":" + key
	delete(d.seen, k)
	d.released = append(d.released, k)
	return nil
}

// ---- skills ----

type stubSkillRepo struct {
	skills []domain.Skill
	calls  int
}

func newStubSkillRepo(ids ...int64) *stubSkillRepo {
	r := &stubSkillRepo{}
	for _, id := range ids {
		r.skills = append(r.skills, domain.Skill{ID: id, Name: "skill-" + strconv.FormatInt(id, 10)})
	}
	return r
}

func (r *stubSkillRepo) List(context.Context) ([]domain.Skill, error) {
	r.calls++
	return append([]domain.Skill(nil), r.skills...), nil
}

func (r *stubSkillRepo) CountExisting(_ context.Context, ids []int64) (int, error) {
	n := 0
	for _, id := range ids {
		for _, s := range r.skills {
			if s.ID == id {
				n++
				break
			}
		}
	}
	return n, nil
}

// ---- profiles ----

type stubProfileRepo struct {
	employers  map[int64]*domain.EmployerProfile
	seekers    map[int64]*domain.SeekerProfile
	portfolio  map[int64]*domain.PortfolioItem
	nextID     int64
	lastTalent ports.TalentFilter
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		employers: make(map[int64]*domain.EmployerProfile),
		seekers:   make(map[int64]*domain.SeekerProfile),
		portfolio: make(map[int64]*domain.PortfolioItem),
	}
}

func (r *stubProfileRepo) UpsertEmployer(_ context.Context, p *domain.EmployerProfile) (*domain.EmployerProfile, error) {
	c := *p
	if existing, ok := r.employers[p.UserID]; ok {
		c.ID = existing.ID
	} else {
		r.nextID++
		c.ID = r.nextID
	}
	r.employers[p.UserID] = &c
	out := c
	return &out, nil
}

func (r *stubProfileRepo) FindEmployerByUserID(_ context.Context, userID int64) (*domain.EmployerProfile, error) {
	p, ok := r.employers[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProfileRepo) SetEmployerLogo(_ context.Context, userID int64, key string) error {
	p, ok := r.employers[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.LogoKey = key
	return nil
}

func (r *stubProfileRepo) UpsertSeeker(_ context.Context, p *domain.SeekerProfile) (*domain.SeekerProfile, error) {
	c := *p
	if existing, ok := r.seekers[p.UserID]; ok {
		c.ID = existing.ID
	} else {
		r.nextID++
		c.ID = r.nextID
	}
	r.seekers[p.UserID] = &c
	out := c
	return &out, nil
}

func (r *stubProfileRepo) FindSeekerByUserID(_ context.Context, userID int64) (*domain.SeekerProfile, error) {
	p, ok := r.seekers[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProfileRepo) SetSeekerResume(_ context.Context, userID int64, key string) error {
	p, ok := r.seekers[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ResumeKey = key
	return nil
}

func (r *stubProfileRepo) ListSeekers(_ context.Context, f ports.TalentFilter) ([]*domain.SeekerProfile, error) {
	r.lastTalent = f
	var out []*domain.SeekerProfile
	for _, p := range r.seekers {
		if f.Pathway != "" && p.Pathway != f.Pathway {
			continue
		}
		if len(f.SkillIDs) > 0 && !sharesSkill(p.SkillIDs, f.SkillIDs) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 {
		out = window(out, f.Offset, f.Limit)
	}
	return out, nil
}

func (r *stubProfileRepo) AddPortfolioItem(_ context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	r.nextID++
	c := *item
	c.ID = r.nextID
	r.portfolio[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubProfileRepo) ListPortfolio(_ context.Context, seekerProfileID int64) ([]*domain.PortfolioItem, error) {
	var out []*domain.PortfolioItem
	for _, it := range r.portfolio {
		if it.SeekerProfileID == seekerProfileID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) DeletePortfolioItem(_ context.Context, id, ownerUserID int64) (*domain.PortfolioItem, error) {
	it, ok := r.portfolio[id]
	if !ok {
		return nil, domain.ErrPortfolioItemNotFound
	}
	seeker, ok := r.seekers[ownerUserID]
	if !ok || seeker.ID != it.SeekerProfileID {
		return nil, domain.ErrPortfolioItemNotFound
	}
	delete(r.portfolio, id)
	return it, nil
}

// ---- jobs ----

type stubJobRepo struct {
	jobs      map[int64]*domain.Job
	nextID    int64
	updates   int
	deletes   int
	listCalls int
}

func newStubJobRepo(jobs ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[int64]*domain.Job)}
	for _, j := range jobs {
		c := *j
		r.jobs[j.ID] = &c
		if j.ID > r.nextID {
			r.nextID = j.ID
		}
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.nextID++
	c := *job
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.jobs[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id int64) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	c := *j
	return &c, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.EmployerUserID != 0 && j.EmployerUserID != f.EmployerUserID {
			continue
		}
		if len(f.SkillIDs) > 0 && !sharesSkill(j.SkillIDs, f.SkillIDs) {
			continue
		}
		c := *j
		out = append(out, &c)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.After(out[k].CreatedAt)
		}
		return out[i].ID > out[k].ID
	})
	r.listCalls++
	total := int64(len(out))
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		out = window(out, (page-1)*f.Limit, f.Limit)
	}
	return out, total, nil
}

func sharesSkill(have, want []int64) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *stubJobRepo) Update(_ context.Context, id, owner int64, p ports.JobUpdate) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok || owner != 0 && j.EmployerUserID != owner {
		return nil, domain.ErrJobNotFound
	}
	r.updates++
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.SkillIDs != nil {
		j.SkillIDs = p.SkillIDs
	}
	c := *j
	return &c, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id, owner int64) error {
	j, ok := r.jobs[id]
	if !ok || owner != 0 && j.EmployerUserID != owner {
		return domain.ErrJobNotFound
	}
	r.deletes++
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) OpenJobSkills(_ context.Context, employerUserID int64) ([]int64, error) {
	var ids []int64
	for _, j := range r.jobs {
		if j.EmployerUserID == employerUserID && j.Status == domain.JobStatusOpen {
			ids = append(ids, j.SkillIDs...)
		}
	}
	return ids, nil
}

// ---- applications ----

type stubApplicationRepo struct {
	apps    map[int64]*domain.Application
	jobs    *stubJobRepo
	nextID  int64
	updates int
	deletes int
	// interleave, when set, is written just before the next status update
	// as if a concurrent request got there first.
	interleave domain.ApplicationStatus
}

func newStubApplicationRepo(jobs *stubJobRepo, apps ...*domain.Application) *stubApplicationRepo {
	r := &stubApplicationRepo{apps: make(map[int64]*domain.Application), jobs: jobs}
	for _, a := range apps {
		c := *a
		r.apps[a.ID] = &c
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.SeekerProfileID == app.SeekerProfileID {
			return nil, domain.ErrDuplicateApplication
		}
	}
	r.nextID++
	c := *app
	c.ID = r.nextID
	r.apps[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id int64) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	c := *a
	if j, ok := r.jobs.jobs[a.JobID]; ok {
		c.EmployerUserID = j.EmployerUserID
		c.JobTitle = j.Title
	}
	return &c, nil
}

// OwnerUserID follows the application to its job like the SQL join does.
func (r *stubApplicationRepo) OwnerUserID(_ context.Context, id int64) (int64, error) {
	a, ok := r.apps[id]
	if !ok {
		return 0, domain.ErrApplicationNotFound
	}
	j, ok := r.jobs.jobs[a.JobID]
	if !ok {
		return 0, domain.ErrApplicationNotFound
	}
	return j.EmployerUserID, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id, owner int64, from, to domain.ApplicationStatus) error {
	a, ok := r.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if owner != 0 && r.jobs.jobs[a.JobID].EmployerUserID != owner {
		return domain.ErrApplicationNotFound
	}
	if r.interleave != "" {
		a.Status, r.interleave = r.interleave, ""
	}
	if a.Status != from {
		return domain.ErrInvalidTransition
	}
	r.updates++
	a.Status = to
	return nil
}

func (r *stubApplicationRepo) Delete(_ context.Context, id, owner int64) error {
	a, ok := r.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if owner != 0 && r.jobs.jobs[a.JobID].EmployerUserID != owner {
		return domain.ErrApplicationNotFound
	}
	r.deletes++
	delete(r.apps, id)
	return nil
}

func (r *stubApplicationRepo) ListBySeeker(_ context.Context, seekerUserID int64) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.apps {
		if a.SeekerUserID == seekerUserID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) ListByJob(_ context.Context, jobID int64) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

type stubEventRepo struct {
	events []domain.ApplicationEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, ev *domain.ApplicationEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *ev)
	return nil
}

func (r *stubEventRepo) ListEvents(_ context.Context, applicationID int64) ([]domain.ApplicationEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.ApplicationEvent
	for _, ev := range r.events {
		if ev.ApplicationID == applicationID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ---- messages ----

type stubMessageRepo struct {
	threads  map[string]*domain.Thread
	messages []*domain.Message
	nextID   int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{threads: make(map[string]*domain.Thread)}
}

func (r *stubMessageRepo) FindOrCreateThread(_ context.Context, a, b int64, appID *int64) (*domain.Thread, error) {
	for _, t := range r.threads {
		if t.HasParticipant(a) && t.HasParticipant(b) {
			return t, nil
		}
	}
	r.nextID++
	t := &domain.Thread{ID: "t" + strconv.Itoa(r.nextID), Participants: []int64{a, b}, ApplicationID: appID}
	r.threads[t.ID] = t
	return t, nil
}

func (r *stubMessageRepo) FindThread(_ context.Context, id string) (*domain.Thread, error) {
	t, ok := r.threads[id]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	return t, nil
}

func (r *stubMessageRepo) ListThreads(_ context.Context, participantID int64) ([]*domain.Thread, error) {
	var out []*domain.Thread
	for _, t := range r.threads {
		if t.HasParticipant(participantID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) InsertMessage(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.nextID++
	c := *m
	c.ID = "m" + strconv.Itoa(r.nextID)
	r.messages = append(r.messages, &c)
	return &c, nil
}

func (r *stubMessageRepo) ListMessages(_ context.Context, threadID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, threadID string, recipientID int64, at time.Time) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.ThreadID == threadID && m.RecipientID == recipientID && m.ReadAt == nil {
			ts := at
			m.ReadAt = &ts
			n++
		}
	}
	return n, nil
}

// ---- object store ----

type stubObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *stubObjectStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = b
	s.types[key] = contentType
	return nil
}

func (s *stubObjectStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubObjectStore) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://objects.test/" + key, nil
}

// ---- identities ----

func identity(id int64, role domain.Role) *domain.Identity {
	return &domain.Identity{UserID: id, Role: role, Email: "u" + strconv.FormatInt(id, 10) + "@example.com"}
}
