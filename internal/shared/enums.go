package shared

// Closed enum sets shared by the program and content domains.
// Values are persisted as-is, so they never change once released.

type ProgramType string

const (
	ProgramTypePodcastSeries     ProgramType = "podcast_series"
	ProgramTypeDocumentarySeries ProgramType = "documentary_series"
)

func (t ProgramType) Valid() bool {
	switch t {
	case ProgramTypePodcastSeries, ProgramTypeDocumentarySeries:
		return true
	}
	return false
}

type ContentType string

const (
	ContentTypePodcastEpisode     ContentType = "podcast_episode"
	ContentTypeDocumentaryEpisode ContentType = "documentary_episode"
	ContentTypeStandaloneVideo    ContentType = "standalone_video"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePodcastEpisode, ContentTypeDocumentaryEpisode, ContentTypeStandaloneVideo:
		return true
	}
	return false
}

type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryCulture       Category = "culture"
	CategoryBusiness      Category = "business"
	CategorySociety       Category = "society"
	CategoryEntertainment Category = "entertainment"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnology, CategoryCulture, CategoryBusiness, CategorySociety, CategoryEntertainment:
		return true
	}
	return false
}

// Status is the publication lifecycle state for both entity types.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// statusTransitions is the full lifecycle graph shared by programs and
// contents: draft->published, published->archived, published->draft,
// archived->draft. Everything else (draft->archived, archived->published,
// self-transitions) is rejected.
var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusArchived, StatusDraft},
	StatusArchived:  {StatusDraft},
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another. Must be consulted before any status mutation.
func CanTransition(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Source is the provenance of a content item.
type Source string

const (
	SourceManual  Source = "manual"
	SourceYouTube Source = "youtube"
	SourceRSS     Source = "rss"
)

func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceYouTube, SourceRSS:
		return true
	}
	return false
}

// DefaultLanguage applies when a request omits the language field.
const DefaultLanguage = "ar"
