package usecase

import (
	"context"
	"testing"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func securityTagsOf(t *testing.T, env *testEnv, guid string) *model.SecurityTagsProperties {
	t.Helper()
	entity, err := env.store.GetEntity(context.Background(), guid)
	require.NoError(t, err)
	c := entity.Classification(model.ClassSecurityTags)
	if c == nil {
		return nil
	}
	tags := &model.SecurityTagsProperties{}
	require.NoError(t, model.DecodeProperties(c.Properties, tags))
	return tags
}

func TestSecurityTags_AddReplaceClear(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	tags := NewSecurityTagsHandler(env.h)

	guid, err := NewGlossaryHandler(env.h).CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)

	require.NoError(t, tags.AddSecurityTags(ctx, testUser, "", "", guid, &model.SecurityTagsProperties{
		SecurityLabels: []string{"confidential"},
	}, model.QueryOptions{}))
	assert.Equal(t, []string{"confidential"}, securityTagsOf(t, env, guid).SecurityLabels)

	require.NoError(t, tags.AddSecurityTags(ctx, testUser, "", "", guid, &model.SecurityTagsProperties{
		SecurityLabels: []string{"sensitive"},
		AccessGroups:   map[string][]string{"sensitive": {"finance"}},
	}, model.QueryOptions{}))
	replaced := securityTagsOf(t, env, guid)
	assert.Equal(t, []string{"sensitive"}, replaced.SecurityLabels)
	assert.Equal(t, map[string][]string{"sensitive": {"finance"}}, replaced.AccessGroups)

	require.NoError(t, tags.ClearSecurityTags(ctx, testUser, "", "", guid, model.QueryOptions{}))
	assert.Nil(t, securityTagsOf(t, env, guid))

	// Clearing again is a no-op and publishes nothing.
	require.NoError(t, tags.ClearSecurityTags(ctx, testUser, "", "", guid, model.QueryOptions{}))

	assert.Equal(t, []string{
		eventbus.EventTypeNewElement,
		eventbus.EventTypeClassifiedElement,
		eventbus.EventTypeReclassifiedElement,
		eventbus.EventTypeDeclassifiedElement,
	}, env.events.types())
}

func TestSecurityTags_Validation(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	tags := NewSecurityTagsHandler(env.h)

	err := tags.AddSecurityTags(ctx, testUser, "", "", "some-guid", nil, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))

	err = tags.AddSecurityTags(ctx, testUser, "", "", "missing", &model.SecurityTagsProperties{}, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-404-001", errorCode(t, err))

	err = tags.ClearSecurityTags(ctx, "", "", "", "missing", model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))

	_, err = tags.GetSecurityTaggedElements(ctx, testUser, "", "", -1, 0, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-008", errorCode(t, err))
}

func TestGetSecurityTaggedElements(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	tags := NewSecurityTagsHandler(env.h)
	glossaries := NewGlossaryHandler(env.h)

	none, err := tags.GetSecurityTaggedElements(ctx, testUser, "", "", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Nil(t, none)

	var tagged []string
	for _, name := range []string{"Glossary:A", "Glossary:B", "Glossary:C"} {
		guid, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps(name))
		require.NoError(t, err)
		if name != "Glossary:B" {
			require.NoError(t, tags.AddSecurityTags(ctx, testUser, "", "", guid,
				&model.SecurityTagsProperties{SecurityLabels: []string{"internal"}}, model.QueryOptions{}))
			tagged = append(tagged, guid)
		}
	}
	processGUID := mustProcess(t, NewLineageHandler(env.h), "Process:Load")
	require.NoError(t, tags.AddSecurityTags(ctx, testUser, "", "", processGUID,
		&model.SecurityTagsProperties{SecurityLabels: []string{"internal"}}, model.QueryOptions{}))
	tagged = append(tagged, processGUID)

	headers, err := tags.GetSecurityTaggedElements(ctx, testUser, "", "", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, headers, 3)
	for i, header := range headers {
		assert.Equal(t, tagged[i], header.GUID)
		assert.Contains(t, classificationNames(*header), model.ClassSecurityTags)
	}
	assert.Equal(t, model.TypeProcess, headers[2].Type.TypeName)

	page, err := tags.GetSecurityTaggedElements(ctx, testUser, "", "", 1, 1, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, tagged[1], page[0].GUID)
}
