package memory

import (
	"catalog/domain/video"
)

type VideoRepository struct {
	*InMemorySearchableRepository[video.VideoID, *video.Video, video.Filter]
}

func NewVideoRepository() *VideoRepository {
	return &VideoRepository{
		InMemorySearchableRepository: NewInMemorySearchableRepository[video.VideoID, *video.Video, video.Filter](
			video.EntityName,
			cloneVideo,
			SearchConfig[*video.Video, video.Filter]{
				Filter: video.MatchesFilter,
				Comparators: map[string]CompareFunc[*video.Video]{
					"title":      func(a, b *video.Video) int { return compareStrings(a.Title(), b.Title()) },
					"created_at": func(a, b *video.Video) int { return oldestFirst(a.CreatedAt(), b.CreatedAt()) },
				},
				DefaultOrder: func(a, b *video.Video) int { return newestFirst(a.CreatedAt(), b.CreatedAt()) },
			},
		),
	}
}

// cloneVideo 媒体是值对象，复制指针指向的值即可
func cloneVideo(v *video.Video) *video.Video {
	return video.Rebuild(video.ReconstructionDTO{
		ID:            v.ID(),
		Title:         v.Title(),
		Description:   v.Description(),
		YearLaunched:  v.YearLaunched(),
		Duration:      v.Duration(),
		Rating:        v.Rating(),
		IsOpened:      v.IsOpened(),
		IsPublished:   v.IsPublished(),
		Banner:        clonePtr(v.Banner()),
		Thumbnail:     clonePtr(v.Thumbnail()),
		ThumbnailHalf: clonePtr(v.ThumbnailHalf()),
		Trailer:       clonePtr(v.Trailer()),
		Video:         clonePtr(v.Video()),
		CategoryIDs:   v.CategoryIDs(),
		GenreIDs:      v.GenreIDs(),
		CastMemberIDs: v.CastMemberIDs(),
		CreatedAt:     v.CreatedAt(),
	})
}

var _ video.Repository = (*VideoRepository)(nil)
