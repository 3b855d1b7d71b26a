package adapter

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/domains/ingestion/model"
	"catalog-backend/internal/shared"
)

// mockYouTubeAdapter serves canned channel data for demo and test use. A
// real YouTube Data API client would slot in behind the same interface.
// External ids are deterministic per (channel, index) so re-importing the
// same channel skips instead of duplicating.
type mockYouTubeAdapter struct{}

func NewMockYouTubeAdapter() SourceAdapter {
	return &mockYouTubeAdapter{}
}

func (a *mockYouTubeAdapter) Source() shared.Source {
	return shared.SourceYouTube
}

const defaultFetchLimit = 10

type sampleEpisode struct {
	title       string
	description string
}

var sampleEpisodes = []sampleEpisode{
	{"الحلقة 1: بداية الرحلة", "نتحدث عن كيف بدأت رحلتنا في عالم الأعمال"},
	{"الحلقة 2: تحديات البدايات", "التحديات التي واجهناها في بداية المشروع"},
	{"الحلقة 3: الفشل والنجاح", "دروس مستفادة من الفشل وكيف نهضنا مجدداً"},
	{"الحلقة 4: بناء الفريق", "كيف تبني فريق عمل ناجح ومتماسك"},
	{"الحلقة 5: التمويل والاستثمار", "نصائح للحصول على التمويل المناسب"},
	{"الحلقة 6: التسويق الرقمي", "استراتيجيات التسويق في العصر الرقمي"},
	{"الحلقة 7: قصص نجاح عربية", "نستضيف رواد أعمال عرب ناجحين"},
	{"الحلقة 8: المستقبل", "رؤيتنا للمستقبل وخططنا القادمة"},
	{"الحلقة 9: الذكاء الاصطناعي", "كيف يغير الذكاء الاصطناعي عالم الأعمال"},
	{"الحلقة 10: ريادة الأعمال الاجتماعية", "الأثر الاجتماعي للمشاريع الريادية"},
}

var sampleChannels = map[string]model.ChannelInfo{
	"UC_demo_channel_1": channelInfo("سوالف بزنس", "بودكاست أسبوعي يناقش آخر أخبار وتطورات عالم الأعمال في المنطقة العربية"),
	"UC_demo_channel_2": channelInfo("فنجان", "بودكاست يستضيف شخصيات ملهمة من مختلف المجالات"),
	"UC_demo_channel_3": channelInfo("بودكاست التقنية", "نناقش آخر التطورات التقنية وتأثيرها على حياتنا"),
}

func (a *mockYouTubeAdapter) Fetch(_ context.Context, channelID string, opts FetchOptions) ([]model.ExternalItem, error) {
	limit := opts.MaxResults
	if limit <= 0 || limit > len(sampleEpisodes) {
		limit = defaultFetchLimit
	}

	items := make([]model.ExternalItem, 0, limit)
	for i := 0; i < limit; i++ {
		episode := sampleEpisodes[i%len(sampleEpisodes)]
		description := episode.description
		// spread publication dates over the past weeks, newest first
		publishedAt := time.Now().AddDate(0, 0, -7*i)

		items = append(items, model.ExternalItem{
			ExternalID:   fmt.Sprintf("yt_%s_%d", channelID, i),
			Title:        episode.title,
			Description:  &description,
			Duration:     1800 + 360*i,
			ThumbnailURL: fmt.Sprintf("https://i.ytimg.com/vi/mock_%s_%d/hqdefault.jpg", channelID, i),
			PublishedAt:  publishedAt,
			Metadata: map[string]any{
				"channelId": channelID,
			},
		})
	}
	return items, nil
}

func (a *mockYouTubeAdapter) ChannelInfo(_ context.Context, channelID string) (*model.ChannelInfo, error) {
	info, ok := sampleChannels[channelID]
	if !ok {
		info = channelInfo("قناة "+channelID, "قناة تجريبية للعرض")
	}
	info.ThumbnailURL = "https://yt3.ggpht.com/mock_channel_" + channelID
	return &info, nil
}

func channelInfo(title, description string) model.ChannelInfo {
	return model.ChannelInfo{Title: title, Description: &description}
}
