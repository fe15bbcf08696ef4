package usecase

import (
	"context"
	"fmt"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

type fakeResolver struct {
	ref domain.DocumentRef
	err error
}

func (f *fakeResolver) Resolve(path string, _ domain.OperationKind) (domain.DocumentRef, error) {
	if f.err != nil {
		return domain.DocumentRef{}, f.err
	}
	ref := f.ref
	if ref.Path == "" {
		ref = domain.DocumentRef{Path: path, Name: "invoice.pdf", MediaType: "application/pdf", Size: 128}
	}
	return ref, nil
}

type fakeAPI struct {
	parseRaw   domain.RawResponse
	parseErr   error
	parseCalls int

	extractRaw    domain.RawResponse
	extractErr    error
	extractCalls  int
	extractSchema domain.Schema

	genSchema domain.Schema
	genErr    error
	genCalls  int
}

func (f *fakeAPI) ParseDocument(context.Context, domain.DocumentRef) (domain.RawResponse, error) {
	f.parseCalls++
	return f.parseRaw, f.parseErr
}

func (f *fakeAPI) ExtractInformation(_ context.Context, _ domain.DocumentRef, schema domain.Schema) (domain.RawResponse, error) {
	f.extractCalls++
	f.extractSchema = schema
	return f.extractRaw, f.extractErr
}

func (f *fakeAPI) GenerateSchema(context.Context, domain.DocumentRef) (domain.Schema, error) {
	f.genCalls++
	return f.genSchema, f.genErr
}

type fakeNormalizer struct {
	content string
	fields  map[string]string
	err     error
}

func (f *fakeNormalizer) NormalizeParse(domain.RawResponse) (string, error) {
	return f.content, f.err
}

func (f *fakeNormalizer) NormalizeExtraction(domain.RawResponse) (map[string]string, error) {
	return f.fields, f.err
}

type savedArtifact struct {
	kind    domain.OperationKind
	docName string
	payload []byte
}

type fakeStore struct {
	err    error
	saves  []savedArtifact
	serial int
}

func (f *fakeStore) SaveJSON(_ context.Context, kind domain.OperationKind, docName string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.serial++
	f.saves = append(f.saves, savedArtifact{kind: kind, docName: docName, payload: payload})
	return fmt.Sprintf("/outputs/%s/%s-%d.json", kind, docName, f.serial), nil
}

type fakeLoader struct {
	schema domain.Schema
	err    error
	calls  int
}

func (f *fakeLoader) Load(string) (domain.Schema, error) {
	f.calls++
	return f.schema, f.err
}
