package entities

// ReleaseMetadata describes the latest published release of the tool
type ReleaseMetadata struct {
	TagName string
	Assets  []ReleaseAsset
}

// ReleaseAsset is a downloadable file attached to a release
type ReleaseAsset struct {
	Name        string
	DownloadURL string
}

// FindAsset returns the asset with exactly the given name
func (m *ReleaseMetadata) FindAsset(name string) (*ReleaseAsset, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Assets {
		if m.Assets[i].Name == name {
			return &m.Assets[i], true
		}
	}
	return nil, false
}
