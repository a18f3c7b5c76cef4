package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hiveportal/internal/domain"
)

func published(status domain.ContentStatus) bool {
	return status == domain.StatusPublished
}

// Members are appended in the order they were added.

func (s *Store) ListMembers(ctx context.Context) []*domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.list(nil)
}

func (s *Store) ListPublishedMembers(ctx context.Context) []*domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.list(func(m *domain.Member) bool { return published(m.Status) })
}

func (s *Store) GetMember(ctx context.Context, id string) (*domain.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.get(id)
}

func (s *Store) AddMember(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.members.add(m)
	if err != nil {
		return nil, err
	}
	saveCollection(ctx, s, s.members)
	return stored.Clone(), nil
}

func (s *Store) UpdateMember(ctx context.Context, m *domain.Member) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.members.update(m, nil)
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.members)
	return true, nil
}

func (s *Store) DeleteMember(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.members.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.members)
	return true
}

// Articles. Comments are append-only: updates keep the stored comments and
// new ones go through AddArticleComment.

func (s *Store) ListArticles(ctx context.Context) []*domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.list(nil)
}

func (s *Store) ListPublishedArticles(ctx context.Context) []*domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.list(func(a *domain.Article) bool { return published(a.Status) })
}

func (s *Store) GetArticle(ctx context.Context, id string) (*domain.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.get(id)
}

func (s *Store) AddArticle(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.articles.add(a)
	if err != nil {
		return nil, err
	}
	if stored.Comments == nil {
		stored.Comments = []domain.Comment{}
	}
	for i := range stored.Comments {
		if stored.Comments[i].ID == "" {
			stored.Comments[i].ID = newID("c")
		}
	}
	saveCollection(ctx, s, s.articles)
	return stored.Clone(), nil
}

func (s *Store) UpdateArticle(ctx context.Context, a *domain.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.articles.update(a, func(prev, next *domain.Article) {
		next.Comments = slices.Clone(prev.Comments)
	})
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.articles)
	return true, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.articles.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.articles)
	return true
}

// AddArticleComment puts c at the head of the article's comments, filling in
// the id and date when empty. It returns ErrNotFound for an unknown article.
func (s *Store) AddArticleComment(ctx context.Context, articleID string, c domain.Comment) (*domain.Comment, error) {
	if err := domain.ValidateStruct(c); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.articles.index(articleID)
	if i < 0 {
		return nil, fmt.Errorf("article %q: %w", articleID, domain.ErrNotFound)
	}
	if c.ID == "" {
		c.ID = newID("c")
	}
	if c.Date == "" {
		c.Date = s.now().UTC().Format(time.RFC3339)
	}
	sanitizeComment(&c)

	article := s.articles.items[i].Clone()
	article.Comments = append([]domain.Comment{c}, article.Comments...)
	s.articles.items[i] = article
	saveCollection(ctx, s, s.articles)
	return &c, nil
}

// Meeting minutes.

func (s *Store) ListMinutes(ctx context.Context) []*domain.MeetingMinute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutes.list(nil)
}

func (s *Store) ListPublishedMinutes(ctx context.Context) []*domain.MeetingMinute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutes.list(func(m *domain.MeetingMinute) bool { return published(m.Status) })
}

func (s *Store) GetMinute(ctx context.Context, id string) (*domain.MeetingMinute, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutes.get(id)
}

func (s *Store) AddMinute(ctx context.Context, m *domain.MeetingMinute) (*domain.MeetingMinute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.minutes.add(m)
	if err != nil {
		return nil, err
	}
	saveCollection(ctx, s, s.minutes)
	return stored.Clone(), nil
}

func (s *Store) UpdateMinute(ctx context.Context, m *domain.MeetingMinute) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.minutes.update(m, nil)
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.minutes)
	return true, nil
}

func (s *Store) DeleteMinute(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.minutes.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.minutes)
	return true
}

// Yearbooks.

func (s *Store) ListYearbooks(ctx context.Context) []*domain.Yearbook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yearbooks.list(nil)
}

func (s *Store) ListPublishedYearbooks(ctx context.Context) []*domain.Yearbook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yearbooks.list(func(y *domain.Yearbook) bool { return published(y.Status) })
}

func (s *Store) GetYearbook(ctx context.Context, id string) (*domain.Yearbook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yearbooks.get(id)
}

func (s *Store) AddYearbook(ctx context.Context, y *domain.Yearbook) (*domain.Yearbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.yearbooks.add(y)
	if err != nil {
		return nil, err
	}
	saveCollection(ctx, s, s.yearbooks)
	return stored.Clone(), nil
}

func (s *Store) UpdateYearbook(ctx context.Context, y *domain.Yearbook) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.yearbooks.update(y, nil)
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.yearbooks)
	return true, nil
}

func (s *Store) DeleteYearbook(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.yearbooks.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.yearbooks)
	return true
}

// Training docs.

func (s *Store) ListTrainingDocs(ctx context.Context) []*domain.TrainingDoc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.training.list(nil)
}

func (s *Store) ListPublishedTrainingDocs(ctx context.Context) []*domain.TrainingDoc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.training.list(func(d *domain.TrainingDoc) bool { return published(d.Status) })
}

func (s *Store) GetTrainingDoc(ctx context.Context, id string) (*domain.TrainingDoc, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.training.get(id)
}

func (s *Store) AddTrainingDoc(ctx context.Context, d *domain.TrainingDoc) (*domain.TrainingDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.training.add(d)
	if err != nil {
		return nil, err
	}
	saveCollection(ctx, s, s.training)
	return stored.Clone(), nil
}

func (s *Store) UpdateTrainingDoc(ctx context.Context, d *domain.TrainingDoc) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.training.update(d, nil)
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.training)
	return true, nil
}

func (s *Store) DeleteTrainingDoc(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.training.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.training)
	return true
}

// Timeline milestones have no status and stay sorted by year.

func (s *Store) ListMilestones(ctx context.Context) []*domain.TimelineMilestone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.milestones.list(nil)
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*domain.TimelineMilestone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.milestones.get(id)
}

func (s *Store) AddMilestone(ctx context.Context, m *domain.TimelineMilestone) (*domain.TimelineMilestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.milestones.add(m)
	if err != nil {
		return nil, err
	}
	saveCollection(ctx, s, s.milestones)
	return stored.Clone(), nil
}

func (s *Store) UpdateMilestone(ctx context.Context, m *domain.TimelineMilestone) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stored, err := s.milestones.update(m, nil)
	if err != nil || stored == nil {
		return false, err
	}
	saveCollection(ctx, s, s.milestones)
	return true, nil
}

func (s *Store) DeleteMilestone(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.milestones.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.milestones)
	return true
}

// Gallery albums are only added or deleted.

func (s *Store) ListAlbums(ctx context.Context) []*domain.GalleryAlbum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.albums.list(nil)
}

func (s *Store) GetAlbum(ctx context.Context, id string) (*domain.GalleryAlbum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.albums.get(id)
}

func (s *Store) AddAlbum(ctx context.Context, a *domain.GalleryAlbum) (*domain.GalleryAlbum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.albums.add(a)
	if err != nil {
		return nil, err
	}
	for i := range stored.Assets {
		if stored.Assets[i].ID == "" {
			stored.Assets[i].ID = newID("asset")
		}
	}
	saveCollection(ctx, s, s.albums)
	return stored.Clone(), nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.albums.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.albums)
	return true
}
