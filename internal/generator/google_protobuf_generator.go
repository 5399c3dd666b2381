package generator

import "google.golang.org/protobuf/types/descriptorpb"

// fileUsesGoogleProtobufWrappers reports whether protoFile depends on any
// google/protobuf/wrappers.proto (or similar) well-known type, used to
// decide whether the generated file needs the runtime package import for
// Optional[T].
func fileUsesGoogleProtobufWrappers(protoFile *descriptorpb.FileDescriptorProto) bool {
	for _, dep := range protoFile.GetDependency() {
		if IsGoogleProtobufDependency(dep) {
			return true
		}
	}
	return false
}
