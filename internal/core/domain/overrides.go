package domain

import (
	"maps"
	"slices"
	"strconv"
)

// Recognized override keys.
const (
	// KeySDKRoot locates the external SDK. Required.
	KeySDKRoot = "sdk.root"
	// KeyVersionCode overrides the integer version code.
	KeyVersionCode = "version.code"
	// KeyVersionName overrides the user-visible version name.
	KeyVersionName = "version.name"
	// KeyAndroidSDK locates the Android SDK inspected by the platform probe.
	KeyAndroidSDK = "sdk.dir"
	// KeyApplicationID overrides the application id from the project file.
	KeyApplicationID = "application.id"
	// KeyAllowDebugSigning opts a release build into debug key material.
	KeyAllowDebugSigning = "signing.allowDebug"
)

// legacyKeys maps canonical keys to the names older local.properties files use.
var legacyKeys = map[string]string{
	KeySDKRoot:     "flutter.sdk",
	KeyVersionCode: "flutter.versionCode",
	KeyVersionName: "flutter.versionName",
}

// LegacyKey returns the legacy name accepted for a canonical key, if any.
func LegacyKey(key string) (string, bool) {
	k, ok := legacyKeys[key]
	return k, ok
}

// Override is a single key=value entry and the place it was read from.
type Override struct {
	Key   string
	Value string
	File  string
	Line  int
}

// Origin returns the override's location as file:line.
func (o Override) Origin() string {
	return o.File + ":" + strconv.Itoa(o.Line)
}

// Overrides maps override keys to the last entry written for them.
// It is built once per resolution run and treated as read-only afterwards.
type Overrides map[string]Override

// Lookup returns the entry for key, falling back to the key's legacy name.
func (o Overrides) Lookup(key string) (Override, bool) {
	if v, ok := o[key]; ok {
		return v, true
	}
	if legacy, ok := legacyKeys[key]; ok {
		if v, ok := o[legacy]; ok {
			return v, true
		}
	}
	return Override{}, false
}

// Value returns the value for key, falling back to the key's legacy name.
func (o Overrides) Value(key string) (string, bool) {
	v, ok := o.Lookup(key)
	return v.Value, ok
}

// Keys returns all keys in sorted order.
func (o Overrides) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}
