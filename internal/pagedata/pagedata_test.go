package pagedata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
)

func TestQueryAbsentFields(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		metadata  *pagedata.SiteMetadata
		wantTitle string
		wantMenu  []pagedata.MenuLink
	}{
		"no metadata": {},
		"no title": {
			metadata: &pagedata.SiteMetadata{MenuLinks: []pagedata.MenuLink{{Name: "About", Link: "/"}}},
			wantMenu: []pagedata.MenuLink{{Name: "About", Link: "/"}},
		},
		"no menu": {
			metadata:  &pagedata.SiteMetadata{Title: pagedata.String("Bernardo")},
			wantTitle: "Bernardo",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			q, err := pagedata.StaticResolver{Metadata: tc.metadata}.Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, q.Title())
			if diff := cmp.Diff(tc.wantMenu, q.MenuLinks()); diff != "" {
				t.Errorf("MenuLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryMetadataZeroValue(t *testing.T) {
	t.Parallel()

	var q pagedata.Query
	assert.Equal(t, pagedata.SiteMetadata{}, q.Metadata())
}

func TestValidateMenu(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pagedata.ValidateMenu(nil))
	assert.NoError(t, pagedata.ValidateMenu([]pagedata.MenuLink{
		{Name: "About", Link: "/"},
		{Name: "Projects", Link: "/projects/"},
	}))

	err := pagedata.ValidateMenu([]pagedata.MenuLink{
		{Name: "About", Link: "/"},
		{Name: "About", Link: "/about/"},
	})
	assert.True(t, errors.Is(err, pagedata.ErrDuplicateMenuName))
}
