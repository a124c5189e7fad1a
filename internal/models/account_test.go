package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountJSON_FieldOrderAndNullPassword(t *testing.T) {
	acc := Account{
		ID:        "1",
		LabelTags: []LabelTag{{Text: "prod"}, {Text: "prod"}},
		Type:      LDAP,
		Login:     "alice",
	}
	b, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"1","labelTags":[{"text":"prod"},{"text":"prod"}],"type":"LDAP","login":"alice","password":null}`,
		string(b))
}

func TestAccountType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    AccountType
		wantErr bool
	}{
		{name: "ldap", in: `"LDAP"`, want: LDAP},
		{name: "local", in: `"Local"`, want: Local},
		{name: "legacy local", in: `"Локальная"`, want: Local},
		{name: "unknown kept for validation", in: `"Kerberos"`, want: "Kerberos"},
		{name: "not a string", in: `42`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AccountType
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != "Kerberos", got.Valid())
		})
	}
}

func TestAccount_MissingPasswordDecodesAsNil(t *testing.T) {
	var acc Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","labelTags":[],"type":"Local","login":"bob"}`), &acc))
	assert.Nil(t, acc.Password)
	assert.Equal(t, Local, acc.Type)
}

func TestParseAccountType(t *testing.T) {
	got, err := ParseAccountType(" ldap ")
	require.NoError(t, err)
	assert.Equal(t, LDAP, got)

	got, err = ParseAccountType("LOCAL")
	require.NoError(t, err)
	assert.Equal(t, Local, got)

	_, err = ParseAccountType("")
	assert.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	orig := Account{ID: "1", LabelTags: []LabelTag{{Text: "a"}}, Type: Local, Password: StringPtr("secret")}
	cp := orig.Clone()
	cp.LabelTags[0].Text = "b"
	*cp.Password = "changed"

	assert.Equal(t, "a", orig.LabelTags[0].Text)
	assert.Equal(t, "secret", *orig.Password)
}

func TestDraftWithID(t *testing.T) {
	d := AccountDraft{LabelTags: []LabelTag{{Text: "x"}}, Type: LDAP, Login: "l"}
	acc := d.WithID("id-1")
	assert.Equal(t, "id-1", acc.ID)
	assert.Equal(t, d, acc.Draft())
}
