package config

import (
	"fmt"
	"sort"
	"strconv"
)

// settingKeys maps the names accepted by `git-instafix config` to git config keys
var settingKeys = map[string]string{
	"upstream":        KeyUpstream,
	"max-commits":     KeyMaxCommits,
	"require-newline": KeyRequireNewline,
	"squash":          KeySquash,
}

// SettingNames returns the names accepted by KeyForSetting, sorted
func SettingNames() []string {
	names := make([]string, 0, len(settingKeys))
	for name := range settingKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyForSetting returns the git config key for a setting name
func KeyForSetting(name string) (string, error) {
	key, ok := settingKeys[name]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s (known keys: %v)", name, SettingNames())
	}
	return key, nil
}

// NormalizeSetting validates value for the named setting and returns the
// form to store. Booleans are stored as "true" or "false".
func NormalizeSetting(name, value string) (string, error) {
	if _, err := KeyForSetting(name); err != nil {
		return "", err
	}
	switch name {
	case "max-commits":
		n, err := parseMaxCommits(value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return strconv.Itoa(n), nil
	case "require-newline", "squash":
		b, err := parseBool(value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return strconv.FormatBool(b), nil
	default:
		if value == "" {
			return "", fmt.Errorf("%s: value must not be empty", name)
		}
		return value, nil
	}
}
