package services

import (
	"context"
	"fmt"

	"hiveportal/internal/domain"
)

// resource adapts one family of Store methods to domain.ContentResource.
type resource[T any] struct {
	list   func(context.Context) []*T
	public func(context.Context) []*T
	get    func(context.Context, string) (*T, bool)
	add    func(context.Context, *T) (*T, error)
	update func(context.Context, *T) (bool, error)
	del    func(context.Context, string) bool
}

func (r resource[T]) List(ctx context.Context) []*T                 { return r.list(ctx) }
func (r resource[T]) Public(ctx context.Context) []*T               { return r.public(ctx) }
func (r resource[T]) Get(ctx context.Context, id string) (*T, bool) { return r.get(ctx, id) }
func (r resource[T]) Add(ctx context.Context, item *T) (*T, error)  { return r.add(ctx, item) }
func (r resource[T]) Delete(ctx context.Context, id string) bool    { return r.del(ctx, id) }

func (r resource[T]) Update(ctx context.Context, item *T) (bool, error) {
	if r.update == nil {
		return false, fmt.Errorf("%w: records of this kind cannot be edited", domain.ErrInvalidInput)
	}
	return r.update(ctx, item)
}

func (s *Store) Events() domain.ContentResource[domain.Event] {
	return resource[domain.Event]{s.ListEvents, s.ListPublicEvents, s.GetEvent, s.AddEvent, s.UpdateEvent, s.DeleteEvent}
}

func (s *Store) Members() domain.ContentResource[domain.Member] {
	return resource[domain.Member]{s.ListMembers, s.ListPublishedMembers, s.GetMember, s.AddMember, s.UpdateMember, s.DeleteMember}
}

func (s *Store) Articles() domain.ContentResource[domain.Article] {
	return resource[domain.Article]{s.ListArticles, s.ListPublishedArticles, s.GetArticle, s.AddArticle, s.UpdateArticle, s.DeleteArticle}
}

func (s *Store) Minutes() domain.ContentResource[domain.MeetingMinute] {
	return resource[domain.MeetingMinute]{s.ListMinutes, s.ListPublishedMinutes, s.GetMinute, s.AddMinute, s.UpdateMinute, s.DeleteMinute}
}

func (s *Store) Yearbooks() domain.ContentResource[domain.Yearbook] {
	return resource[domain.Yearbook]{s.ListYearbooks, s.ListPublishedYearbooks, s.GetYearbook, s.AddYearbook, s.UpdateYearbook, s.DeleteYearbook}
}

func (s *Store) TrainingDocs() domain.ContentResource[domain.TrainingDoc] {
	return resource[domain.TrainingDoc]{s.ListTrainingDocs, s.ListPublishedTrainingDocs, s.GetTrainingDoc, s.AddTrainingDoc, s.UpdateTrainingDoc, s.DeleteTrainingDoc}
}

// Milestones have no publication status, so Public lists everything.
func (s *Store) Milestones() domain.ContentResource[domain.TimelineMilestone] {
	return resource[domain.TimelineMilestone]{s.ListMilestones, s.ListMilestones, s.GetMilestone, s.AddMilestone, s.UpdateMilestone, s.DeleteMilestone}
}

// Albums can be added and deleted but not edited.
func (s *Store) Albums() domain.ContentResource[domain.GalleryAlbum] {
	return resource[domain.GalleryAlbum]{list: s.ListAlbums, public: s.ListAlbums, get: s.GetAlbum, add: s.AddAlbum, del: s.DeleteAlbum}
}
