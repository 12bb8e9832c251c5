package handlers

import (
	"github.com/techhub/techhub/internal/server/dto"
	"github.com/techhub/techhub/internal/storage/catalog"
)

// --- DTO to catalog conversions ---

func frameworkInput(r *dto.FrameworkRequest) catalog.FrameworkInput {
	in := catalog.FrameworkInput{
		Category:        catalog.Category(r.Category),
		PrimaryLanguage: catalog.Language(r.PrimaryLanguage),
		Description:     r.Description,
		OfficialSite:    r.OfficialSite,
	}
	if r.Name != nil {
		in.Name = *r.Name
	}
	if r.CurrentVersion != nil {
		in.CurrentVersion = *r.CurrentVersion
	}
	return in
}

// --- Catalog to DTO conversions ---

func frameworkToResponse(f *catalog.Framework) dto.FrameworkResponse {
	return dto.FrameworkResponse{
		ID:              f.ID,
		Name:            f.Name,
		CurrentVersion:  f.CurrentVersion,
		Category:        dto.Category(f.Category),
		PrimaryLanguage: dto.Language(f.PrimaryLanguage),
		Description:     f.Description,
		OfficialSite:    f.OfficialSite,
	}
}

func frameworksToList(fs []*catalog.Framework) *dto.FrameworkList {
	out := make(dto.FrameworkList, 0, len(fs))
	for _, f := range fs {
		out = append(out, frameworkToResponse(f))
	}
	return &out
}
