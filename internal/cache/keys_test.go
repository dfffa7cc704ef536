package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "workspace",
			objectType:  "session",
			identifier:  "abc",
			expectedKey: "syllabus:workspace:session:abc",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "workspace",
			objectType:  "session",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "syllabus:workspace:session:abc",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "course",
			objectType:  "export",
			identifier:  "01J",
			paramsKey:   []string{"json", "v1"},
			expectedKey: "syllabus:course:export:01J:json_v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...); got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.expectedKey)
			}
		})
	}
}
