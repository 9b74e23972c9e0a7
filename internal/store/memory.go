package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory implementations of every port, used as development fallback when
// Postgres is not configured and as fixtures in tests. Not production-grade.

// InMemoryUserStore holds users in a map.
type InMemoryUserStore struct {
	mu     sync.RWMutex
	byID   map[string]UserRow
	byName map[string]string // username -> id
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:   make(map[string]UserRow),
		byName: make(map[string]string),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, p CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[p.Username]; taken {
		return User{}, ErrConflict
	}
	u := User{
		ID:       "user-" + uuid.NewString(),
		Username: p.Username,
		Fullname: p.Fullname,
	}
	s.byID[u.ID] = UserRow{User: u, PasswordHash: p.PasswordHash}
	s.byName[u.Username] = u.ID
	return u, nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (UserRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return UserRow{}, ErrNotFound
	}
	return s.byID[id], nil
}

// usernameOf resolves an owner id for list joins. Unknown ids fall back to
// the id itself so stores stay usable without registered users in tests.
func (s *InMemoryUserStore) usernameOf(id string) string {
	if s == nil {
		return id
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row, ok := s.byID[id]; ok {
		return row.User.Username
	}
	return id
}

// InMemoryThreadStore holds threads in a map.
type InMemoryThreadStore struct {
	mu      sync.RWMutex
	threads map[string]Thread
	users   *InMemoryUserStore
}

func NewInMemoryThreadStore(users *InMemoryUserStore) *InMemoryThreadStore {
	return &InMemoryThreadStore{threads: make(map[string]Thread), users: users}
}

func (s *InMemoryThreadStore) Create(_ context.Context, t NewThread) (Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Thread{
		ID:    "thread-" + uuid.NewString(),
		Title: t.Title,
		Body:  t.Body,
		Owner: t.Owner,
		Date:  time.Now().UTC(),
	}
	s.threads[out.ID] = out
	return out, nil
}

func (s *InMemoryThreadStore) FindByID(_ context.Context, threadID string) (ThreadDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.threads[threadID]
	if !ok {
		return ThreadDetail{}, ErrNotFound
	}
	return ThreadDetail{
		ID:       t.ID,
		Title:    t.Title,
		Body:     t.Body,
		Date:     t.Date,
		Username: s.users.usernameOf(t.Owner),
	}, nil
}

func (s *InMemoryThreadStore) Exists(_ context.Context, threadID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.threads[threadID]; !ok {
		return ErrNotFound
	}
	return nil
}

type memComment struct {
	ID        string
	ThreadID  string
	Owner     string
	Content   string
	Date      time.Time
	IsDeleted bool
	seq       int
}

// InMemoryCommentStore holds comments in a map.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]memComment
	nextSeq  int
	users    *InMemoryUserStore
}

func NewInMemoryCommentStore(users *InMemoryUserStore) *InMemoryCommentStore {
	return &InMemoryCommentStore{comments: make(map[string]memComment), users: users}
}

func (s *InMemoryCommentStore) Create(_ context.Context, c NewComment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := memComment{
		ID:       "comment-" + uuid.NewString(),
		ThreadID: c.ThreadID,
		Owner:    c.Owner,
		Content:  c.Content,
		Date:     time.Now().UTC(),
		seq:      s.nextSeq,
	}
	s.nextSeq++
	s.comments[rec.ID] = rec
	return Comment{ID: rec.ID, Content: rec.Content, Owner: rec.Owner}, nil
}

func (s *InMemoryCommentStore) FindByThreadID(_ context.Context, threadID string) ([]CommentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []memComment
	for _, c := range s.comments {
		if c.ThreadID == threadID {
			recs = append(recs, c)
		}
	}
	// insertion order breaks creation-time ties
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Date.Equal(recs[j].Date) {
			return recs[i].Date.Before(recs[j].Date)
		}
		return recs[i].seq < recs[j].seq
	})

	out := make([]CommentRow, 0, len(recs))
	for _, c := range recs {
		out = append(out, CommentRow{
			ID:        c.ID,
			Username:  s.users.usernameOf(c.Owner),
			Date:      c.Date,
			Content:   c.Content,
			IsDeleted: c.IsDeleted,
		})
	}
	return out, nil
}

func (s *InMemoryCommentStore) Exists(_ context.Context, commentID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.comments[commentID]; !ok {
		return ErrNotFound
	}
	return nil
}

func (s *InMemoryCommentStore) CheckAvailable(_ context.Context, commentID, threadID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[commentID]
	if !ok || c.ThreadID != threadID || c.IsDeleted {
		return ErrNotFound
	}
	return nil
}

func (s *InMemoryCommentStore) CheckOwner(_ context.Context, commentID, threadID, owner string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[commentID]
	if !ok || c.ThreadID != threadID || c.IsDeleted {
		return ErrNotFound
	}
	if c.Owner != owner {
		return ErrForbidden
	}
	return nil
}

func (s *InMemoryCommentStore) SoftDelete(_ context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return ErrInvariant
	}
	c.IsDeleted = true
	s.comments[commentID] = c
	return nil
}

type memReply struct {
	ID        string
	ThreadID  string
	CommentID string
	Owner     string
	Content   string
	Date      time.Time
	IsDeleted bool
	seq       int
}

// InMemoryReplyStore holds replies in a map.
type InMemoryReplyStore struct {
	mu      sync.RWMutex
	replies map[string]memReply
	nextSeq int
	users   *InMemoryUserStore
}

func NewInMemoryReplyStore(users *InMemoryUserStore) *InMemoryReplyStore {
	return &InMemoryReplyStore{replies: make(map[string]memReply), users: users}
}

func (s *InMemoryReplyStore) Create(_ context.Context, r NewReply) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := memReply{
		ID:        "reply-" + uuid.NewString(),
		ThreadID:  r.ThreadID,
		CommentID: r.CommentID,
		Owner:     r.Owner,
		Content:   r.Content,
		Date:      time.Now().UTC(),
		seq:       s.nextSeq,
	}
	s.nextSeq++
	s.replies[rec.ID] = rec
	return Reply{ID: rec.ID, Content: rec.Content, Owner: rec.Owner}, nil
}

func (s *InMemoryReplyStore) FindByCommentID(_ context.Context, commentID string) ([]ReplyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []memReply
	for _, r := range s.replies {
		if r.CommentID == commentID {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Date.Equal(recs[j].Date) {
			return recs[i].Date.Before(recs[j].Date)
		}
		return recs[i].seq < recs[j].seq
	})

	out := make([]ReplyRow, 0, len(recs))
	for _, r := range recs {
		out = append(out, ReplyRow{
			ID:        r.ID,
			Username:  s.users.usernameOf(r.Owner),
			Date:      r.Date,
			Content:   r.Content,
			IsDeleted: r.IsDeleted,
		})
	}
	return out, nil
}

func (s *InMemoryReplyStore) CheckAvailable(_ context.Context, replyID, commentID, threadID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.replies[replyID]
	if !ok || r.CommentID != commentID || r.ThreadID != threadID || r.IsDeleted {
		return ErrNotFound
	}
	return nil
}

func (s *InMemoryReplyStore) CheckOwner(_ context.Context, replyID, commentID, threadID, owner string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.replies[replyID]
	if !ok || r.CommentID != commentID || r.ThreadID != threadID || r.IsDeleted {
		return ErrNotFound
	}
	if r.Owner != owner {
		return ErrForbidden
	}
	return nil
}

func (s *InMemoryReplyStore) SoftDelete(_ context.Context, replyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.replies[replyID]
	if !ok {
		return ErrInvariant
	}
	r.IsDeleted = true
	s.replies[replyID] = r
	return nil
}

// InMemoryAuthenticationStore holds refresh sessions keyed by token hash.
type InMemoryAuthenticationStore struct {
	mu       sync.RWMutex
	sessions map[string]RefreshSession
}

func NewInMemoryAuthenticationStore() *InMemoryAuthenticationStore {
	return &InMemoryAuthenticationStore{sessions: make(map[string]RefreshSession)}
}

func (s *InMemoryAuthenticationStore) Save(_ context.Context, sess RefreshSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.TokenHash] = sess
	return nil
}

func (s *InMemoryAuthenticationStore) FindByTokenHash(_ context.Context, tokenHash string) (RefreshSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return RefreshSession{}, ErrNotFound
	}
	return sess, nil
}

func (s *InMemoryAuthenticationStore) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[tokenHash]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, tokenHash)
	return nil
}

type memLike struct {
	ThreadID  string
	CommentID string
	Owner     string
}

// InMemoryLikeStore holds likes keyed by (comment, owner), which makes the
// one-like-per-pair invariant structural.
type InMemoryLikeStore struct {
	mu    sync.RWMutex
	likes map[string]memLike
}

func NewInMemoryLikeStore() *InMemoryLikeStore {
	return &InMemoryLikeStore{likes: make(map[string]memLike)}
}

func likeKey(commentID, owner string) string {
	return commentID + "\x00" + owner
}

func (s *InMemoryLikeStore) Exists(_ context.Context, threadID, commentID, owner string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.likes[likeKey(commentID, owner)]
	return ok && l.ThreadID == threadID, nil
}

func (s *InMemoryLikeStore) Create(_ context.Context, threadID, commentID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.likes[likeKey(commentID, owner)] = memLike{ThreadID: threadID, CommentID: commentID, Owner: owner}
	return nil
}

func (s *InMemoryLikeStore) Delete(_ context.Context, threadID, commentID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey(commentID, owner)
	if l, ok := s.likes[key]; ok && l.ThreadID == threadID {
		delete(s.likes, key)
	}
	return nil
}

func (s *InMemoryLikeStore) CountForComment(_ context.Context, commentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.likes {
		if l.CommentID == commentID {
			n++
		}
	}
	return n, nil
}
