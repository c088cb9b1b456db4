package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchPageUnknownTagIsNil(t *testing.T) {
	t.Parallel()

	client, stub := newStubClient(t, nil)
	page, err := client.FetchPage(context.Background(), "MysteryPage", "whatever")
	require.NoError(t, err)
	require.Nil(t, page)
	require.Zero(t, stub.requests, "unknown tags must not reach the CMS")
}

func TestFetchPageMissingContentIsNil(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t, map[string]string{
		"GetGenericPage": `{"data":{"genericPage":null}}`,
	})

	page, err := client.FetchPage(context.Background(), TypeGenericPage, "gone")
	require.NoError(t, err)
	require.Nil(t, page)
}

func TestFetchGenericPage(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t, map[string]string{
		"GetGenericPage": `{"data":{"genericPage":{"seoTitle":"Baggage","heroTitle":"Baggage","content":[{"blockType":"text","text":"Allowance details."}]}}}`,
	})

	page, err := client.FetchPage(context.Background(), TypeGenericPage, "baggage")
	require.NoError(t, err)
	generic, ok := page.(*GenericPage)
	require.True(t, ok)
	require.Equal(t, "Baggage", generic.SEOTitle)
	require.Len(t, generic.Content, 1)
}

func TestFetchCareersMergesVacancies(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t, map[string]string{
		"GetCareersPage": `{"data":{"pages":[{"heroTitle":"Careers","seoTitle":"Careers at Pacific Air"}],"jobVacancies":[{"positionTitle":"First Officer","departmentName":"Flight Operations","location":"Honiara"}]}}`,
	})

	page, err := client.FetchPage(context.Background(), TypeCareersPage, "careers")
	require.NoError(t, err)
	careers, ok := page.(*CareersPage)
	require.True(t, ok)
	require.Equal(t, "Careers at Pacific Air", careers.SEOTitle)
	require.Len(t, careers.JobVacancies, 1)
	require.Equal(t, "First Officer", careers.JobVacancies[0].PositionTitle)
}

func TestFetchFlightScheduleMergesSchedules(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t, map[string]string{
		"GetFlightSchedules": `{"data":{"pages":[{},{"heroTitle":"Flight Schedules"}],"schedules":[{"id":"s1","startDate":"2026-09-01","flights":[{"flightNumber":"IE700"}]}]}}`,
	})

	page, err := client.FetchPage(context.Background(), TypeFlightSchedule, "flight-schedules")
	require.NoError(t, err)
	schedule, ok := page.(*FlightSchedulePage)
	require.True(t, ok)
	require.Equal(t, "Flight Schedules", schedule.HeroTitle)
	require.Len(t, schedule.Schedules, 1)
	require.Equal(t, "IE700", schedule.Schedules[0].Flights[0].FlightNumber)
}

func TestNewsCategoryAndArticle(t *testing.T) {
	t.Parallel()

	client, _ := newStubClient(t, map[string]string{
		"GetNewsCategory": `{"data":{"newsCategory":{"id":"9","slug":"media-releases","heroTitle":"Media Releases"}}}`,
		"GetArticle":      `{"data":{"newsArticle":{"id":"12","slug":"new-route","articleTitle":"New route announced","body":"# Big news"}}}`,
	})

	category, err := client.NewsCategory(context.Background(), "media-releases")
	require.NoError(t, err)
	require.Equal(t, "9", category.ID)

	article, err := client.NewsArticle(context.Background(), "new-route")
	require.NoError(t, err)
	require.Equal(t, "New route announced", article.ArticleTitle)
}

func TestEncodeDecodePageRoundTrip(t *testing.T) {
	t.Parallel()

	original := &Destination{HeroTitle: "Gizo", Country: "Solomon Islands"}
	raw, err := EncodePage(original)
	require.NoError(t, err)

	decoded, err := DecodePage(raw)
	require.NoError(t, err)
	destination, ok := decoded.(*Destination)
	require.True(t, ok)
	require.Equal(t, "Gizo", destination.HeroTitle)
	require.Equal(t, TypeDestination, decoded.PageTypeName())
}

func TestDecodePageUnknownType(t *testing.T) {
	t.Parallel()

	_, err := DecodePage([]byte(`{"typeName":"Nope","data":{}}`))
	require.Error(t, err)
}

func TestNormalizeTypeTag(t *testing.T) {
	t.Parallel()

	require.Equal(t, TypeDestination, NormalizeTypeTag(TypeDestination, true))
	require.Equal(t, TypeFlightSchedule, NormalizeTypeTag("", true))
	require.Empty(t, NormalizeTypeTag("", false))
}
