package source

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/logger"
)

// iconCluster is one entry of a cluster_svg.json / cluster_png.json file.
type iconCluster struct {
	Name         string     `json:"name"`
	SourceFolder string     `json:"source_folder"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Keywords     []string   `json:"keywords"`
	FileNames    []iconFile `json:"fileNames"`
}

type iconFile struct {
	FileName    string   `json:"fileName"`
	Description string   `json:"description"`
	Usecases    string   `json:"usecases"`
	Tags        []string `json:"tags"`
	Synonyms    []string `json:"synonyms"`
}

type iconClusterFile struct {
	Clusters map[string]iconCluster `json:"clusters"`
}

// IconBuilder builds svg or png icon documents from a cluster file.
type IconBuilder struct {
	category  category.Category
	path      string
	imageRoot string
}

// NewSVGIcons creates the svg icon builder.
func NewSVGIcons(clusterPath string) *IconBuilder {
	return &IconBuilder{category: category.SVGIcons, path: clusterPath, imageRoot: "/svg_icons"}
}

// NewPNGIcons creates the png icon builder.
func NewPNGIcons(clusterPath string) *IconBuilder {
	return &IconBuilder{category: category.PNGIcons, path: clusterPath, imageRoot: "/png_icons"}
}

// Category returns the builder's category.
func (b *IconBuilder) Category() category.Category { return b.category }

// Build emits one Icon per file name of every cluster, clusters in name order.
func (b *IconBuilder) Build(ctx context.Context) ([]document.Document, error) {
	var f iconClusterFile
	if err := readJSON(b.category, b.path, &f); err != nil {
		return nil, err
	}
	if f.Clusters == nil {
		return nil, domain.NewSourceReadError(string(b.category), b.path, errors.New(`missing "clusters" object`))
	}

	names := make([]string, 0, len(f.Clusters))
	for name := range f.Clusters {
		names = append(names, name)
	}
	sort.Strings(names)

	var docs []document.Document
	for _, name := range names {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		cl := f.Clusters[name]
		folder := cl.SourceFolder
		if folder == "" {
			folder = name
		}

		for _, file := range cl.FileNames {
			keywords := make([]string, 0, len(file.Tags)+len(file.Synonyms)+len(cl.Keywords))
			keywords = append(keywords, file.Tags...)
			keywords = append(keywords, file.Synonyms...)
			keywords = append(keywords, cl.Keywords...)

			iconName := stripExt(file.FileName)
			docs = append(docs, document.Icon{
				Base: base(ctx, b.category, record{
					slug:        iconName,
					description: file.Description,
					keywords:    keywords,
					segments:    []string{folder, iconName},
				}),
				Image: b.imageRoot + "/" + folder + "/" + file.FileName,
			})
		}
	}

	logger.FromContext(ctx).Info("icon clusters processed",
		zap.Int("clusters", len(names)),
		zap.Int("documents", len(docs)),
	)
	return docs, nil
}
