package generator

import "strings"

// IsGoogleProtobufDependency checks if a dependency is a well-known
// google/protobuf/*.proto type.
func IsGoogleProtobufDependency(dependency string) bool {
	return strings.HasPrefix(dependency, "google/protobuf/")
}

// IsGoogleAPIDependency checks if a dependency is a google/api/*.proto type.
func IsGoogleAPIDependency(dependency string) bool {
	return strings.HasPrefix(dependency, "google/api/")
}

// IsGoogleDependency checks if a dependency is any Google-provided type.
func IsGoogleDependency(dependency string) bool {
	return IsGoogleProtobufDependency(dependency) || IsGoogleAPIDependency(dependency)
}
