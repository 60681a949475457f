package extension

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/adamancini/vsixinstaller/internal/types"
)

// manifestDoc covers both manifest dialects; only the fields of the matching
// root element are populated.
type manifestDoc struct {
	XMLName xml.Name

	// <PackageManifest> (VS2012+)
	Metadata struct {
		Identity struct {
			ID        string `xml:"Id,attr"`
			Version   string `xml:"Version,attr"`
			Publisher string `xml:"Publisher,attr"`
		} `xml:"Identity"`
		DisplayName string `xml:"DisplayName"`
		Description string `xml:"Description"`
	} `xml:"Metadata"`

	// <Vsix> (VS2010)
	Identifier struct {
		ID          string `xml:"Id,attr"`
		Name        string `xml:"Name"`
		Author      string `xml:"Author"`
		Version     string `xml:"Version"`
		Description string `xml:"Description"`
	} `xml:"Identifier"`
}

// ReadManifest decodes an extension.vsixmanifest document.
func ReadManifest(r io.Reader) (*Package, error) {
	var doc manifestDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", types.ManifestFileName, err)
	}

	var pkg Package
	switch doc.XMLName.Local {
	case "PackageManifest":
		id := doc.Metadata.Identity
		pkg = Package{
			ID:          id.ID,
			Name:        strings.TrimSpace(doc.Metadata.DisplayName),
			Version:     id.Version,
			Publisher:   id.Publisher,
			Description: strings.TrimSpace(doc.Metadata.Description),
			Schema:      types.ManifestSchemaV2,
		}
	case "Vsix":
		id := doc.Identifier
		pkg = Package{
			ID:          id.ID,
			Name:        strings.TrimSpace(id.Name),
			Version:     strings.TrimSpace(id.Version),
			Publisher:   strings.TrimSpace(id.Author),
			Description: strings.TrimSpace(id.Description),
			Schema:      types.ManifestSchemaV1,
		}
	default:
		return nil, fmt.Errorf("unrecognized manifest root element <%s>", doc.XMLName.Local)
	}

	if pkg.ID == "" {
		return nil, fmt.Errorf("manifest has no extension identifier")
	}
	if pkg.Version == "" {
		return nil, fmt.Errorf("manifest for %s has no version", pkg.ID)
	}
	if pkg.Name == "" {
		pkg.Name = pkg.ID
	}
	return &pkg, nil
}

// LoadPackage opens a VSIX archive and reads its manifest.
func LoadPackage(path string) (*Package, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VSIX %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.EqualFold(f.Name, types.ManifestFileName) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", types.ManifestFileName, err)
		}
		defer rc.Close()

		pkg, err := ReadManifest(rc)
		if err != nil {
			return nil, fmt.Errorf("invalid VSIX %s: %w", path, err)
		}
		pkg.Path = path
		return pkg, nil
	}

	return nil, fmt.Errorf("invalid VSIX %s: %s not found", path, types.ManifestFileName)
}
