package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgv(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "empty", input: "", want: nil},
		{name: "simple", input: "notify-send -u critical", want: []string{"notify-send", "-u", "critical"}},
		{name: "quoted spaces", input: `mynotifier --icon "task done"`, want: []string{"mynotifier", "--icon", "task done"}},
		{name: "single quote", input: `mynotifier --icon 'task done'`, want: []string{"mynotifier", "--icon", "task done"}},
		{name: "escaped space", input: `mynotifier task\ done`, want: []string{"mynotifier", "task done"}},
		{name: "leading comment", input: `# notify-send -u critical`, want: nil},
		{name: "unterminated quote", input: `mynotifier "oops`, wantErr: "unterminated quote"},
		{name: "unterminated escape", input: `mynotifier oops\`, wantErr: "unterminated escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseArgv(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
