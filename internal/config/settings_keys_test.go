package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyForSetting(t *testing.T) {
	key, err := KeyForSetting("upstream")
	require.NoError(t, err)
	require.Equal(t, KeyUpstream, key)

	_, err = KeyForSetting("trunk")
	require.ErrorContains(t, err, "unknown configuration key: trunk")

	require.Equal(t, []string{"max-commits", "require-newline", "squash", "upstream"}, SettingNames())
}

func TestNormalizeSetting(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr string
	}{
		{name: "max-commits", value: "20", want: "20"},
		{name: "max-commits", value: "0", wantErr: "must be positive"},
		{name: "max-commits", value: "many", wantErr: "invalid number"},
		{name: "squash", value: "yes", want: "true"},
		{name: "require-newline", value: "off", want: "false"},
		{name: "squash", value: "maybe", wantErr: "invalid boolean"},
		{name: "upstream", value: "origin/develop", want: "origin/develop"},
		{name: "upstream", value: "", wantErr: "must not be empty"},
		{name: "editor", value: "vim", wantErr: "unknown configuration key"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			got, err := NormalizeSetting(tt.name, tt.value)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
