package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danweiss/femstage/internal/core/analysis"
	"github.com/danweiss/femstage/internal/core/ledger"
	"github.com/danweiss/femstage/internal/core/model"
	"github.com/danweiss/femstage/internal/core/settings"
	"github.com/danweiss/femstage/internal/core/workdir"
	"github.com/danweiss/femstage/pkg/femdoc"
)

// ResolveArgs defines arguments for the resolve_working_directory tool
type ResolveArgs struct {
	Doc    string `json:"doc" jsonschema:"description=Path to the document dump,required"`
	Solver string `json:"solver,omitempty" jsonschema:"description=Solver label (required when the document has several solvers)"`
	Mode   string `json:"mode,omitempty" jsonschema:"description=Override placement mode: temporary, beside, custom"`
}

// ListMembersArgs defines arguments for the list_members tool
type ListMembersArgs struct {
	Doc      string `json:"doc" jsonschema:"description=Path to the document dump,required"`
	Analysis string `json:"analysis,omitempty" jsonschema:"description=Analysis name (required when the document has several analyses)"`
	Kind     string `json:"kind,omitempty" jsonschema:"description=Only members of this kind (inheritance counts)"`
}

// MeshArgs defines arguments for the get_mesh_to_solve tool
type MeshArgs struct {
	Doc      string `json:"doc" jsonschema:"description=Path to the document dump,required"`
	Analysis string `json:"analysis,omitempty" jsonschema:"description=Analysis name (required when the document has several analyses)"`
}

// ResolveResult is the resolve_working_directory response
type ResolveResult struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Created bool   `json:"created"`
	Warning string `json:"warning,omitempty"`
}

// MemberInfo is one entry in the list_members response
type MemberInfo struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Kind         string `json:"kind"`
	RefShapeType string `json:"ref_shape_type,omitempty"`
}

// MeshResult is the get_mesh_to_solve response
type MeshResult struct {
	Mesh      string `json:"mesh,omitempty"`
	MeshKind  string `json:"mesh_kind,omitempty"`
	Part      string `json:"part,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// StartServer starts the MCP server on stdio
func StartServer(ledgerPath string) error {
	s := server.NewMCPServer(
		"femstage",
		"1.0.0",
	)

	resolveTool := mcp.NewTool("resolve_working_directory",
		mcp.WithDescription("Resolve (and create if needed) the staging directory for a solver in a document dump, following the configured placement policy. The resolution is recorded in the staging catalog."),
		mcp.WithString("doc",
			mcp.Required(),
			mcp.Description("Path to the document dump")),
		mcp.WithString("solver",
			mcp.Description("Solver label (required when the document has several solvers)")),
		mcp.WithString("mode",
			mcp.Description("Override placement mode: temporary, beside, custom")),
	)
	s.AddTool(resolveTool, makeResolveHandler(ledgerPath))

	membersTool := mcp.NewTool("list_members",
		mcp.WithDescription("List the members of an analysis container in a document dump, optionally filtered by kind"),
		mcp.WithString("doc",
			mcp.Required(),
			mcp.Description("Path to the document dump")),
		mcp.WithString("analysis",
			mcp.Description("Analysis name (required when the document has several analyses)")),
		mcp.WithString("kind",
			mcp.Description("Only members of this kind (inheritance counts)")),
	)
	s.AddTool(membersTool, makeListMembersHandler())

	meshTool := mcp.NewTool("get_mesh_to_solve",
		mcp.WithDescription("Determine the single mesh object a solver run would use, and the geometry it meshes. Missing or ambiguous meshes are reported as a condition, not an error."),
		mcp.WithString("doc",
			mcp.Required(),
			mcp.Description("Path to the document dump")),
		mcp.WithString("analysis",
			mcp.Description("Analysis name (required when the document has several analyses)")),
	)
	s.AddTool(meshTool, makeMeshHandler())

	return server.ServeStdio(s)
}

func makeResolveHandler(ledgerPath string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ResolveArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		cfg, err := settings.Load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load preferences: %v", err)), nil
		}
		mode := cfg.DirMode
		if args.Mode != "" {
			mode = workdir.ParseMode(args.Mode)
		}

		doc, solver, err := loadSolver(args.Doc, args.Solver)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := workdir.Resolve(workdir.SolverContext{
			Label:        solver.Label(),
			DocumentName: doc.Name(),
			DocumentPath: doc.Path(),
		}, mode, cfg.CustomDir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("resolution failed: %v", err)), nil
		}

		if res.Path != "" {
			db, err := ledger.New(ledgerPath)
			if err == nil {
				_ = db.Record(doc.Name(), solver.Label(), mode, res)
				_ = db.Close()
			}
		}

		result := ResolveResult{Path: res.Path, Mode: mode.String(), Created: res.Created}
		if res.Warning != nil {
			result.Warning = res.Warning.Error()
		}
		return marshalResult(result)
	}
}

func makeListMembersHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListMembersArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		_, ana, err := loadAnalysis(args.Doc, args.Analysis)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		kind := args.Kind
		if kind == "" {
			kind = model.KindDocumentObject
		}
		members, err := analysis.SeveralMembers(ana, kind)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
		}

		infos := make([]MemberInfo, 0, len(members))
		for _, m := range members {
			infos = append(infos, MemberInfo{
				Name:         m.Object.Name(),
				Label:        m.Object.Label(),
				Kind:         model.TypeOf(m.Object),
				RefShapeType: m.RefShapeType,
			})
		}
		return marshalResult(map[string]interface{}{"members": infos})
	}
}

func makeMeshHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args MeshArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		_, ana, err := loadAnalysis(args.Doc, args.Analysis)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		mesh, err := analysis.MeshToSolve(ana)
		if err != nil {
			// Missing and ambiguous meshes are conditions the agent
			// should see, not protocol errors
			if errors.Is(err, analysis.ErrNoMesh) || errors.Is(err, analysis.ErrAmbiguousMesh) {
				return marshalResult(MeshResult{Condition: err.Error()})
			}
			return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
		}

		result := MeshResult{Mesh: mesh.Label(), MeshKind: model.TypeOf(mesh)}
		if part := analysis.PartToMesh(mesh); part != nil {
			result.Part = part.Label()
		}
		return marshalResult(result)
	}
}

func loadSolver(docPath, label string) (*femdoc.Document, model.Object, error) {
	doc, err := femdoc.ParseFile(docPath)
	if err != nil {
		return nil, nil, err
	}
	var solvers []model.Object
	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindSolver) {
			continue
		}
		if label != "" && obj.Label() != label {
			continue
		}
		solvers = append(solvers, obj)
	}
	switch len(solvers) {
	case 0:
		return nil, nil, fmt.Errorf("no matching solver in document %s", doc.Name())
	case 1:
		return doc, solvers[0], nil
	default:
		return nil, nil, fmt.Errorf("multiple solvers in document %s, pass a solver label", doc.Name())
	}
}

func loadAnalysis(docPath, name string) (*femdoc.Document, model.Object, error) {
	doc, err := femdoc.ParseFile(docPath)
	if err != nil {
		return nil, nil, err
	}
	var analyses []model.Object
	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindAnalysis) {
			continue
		}
		if name != "" && obj.Name() != name {
			continue
		}
		analyses = append(analyses, obj)
	}
	switch len(analyses) {
	case 0:
		return nil, nil, fmt.Errorf("no matching analysis in document %s", doc.Name())
	case 1:
		return doc, analyses[0], nil
	default:
		return nil, nil, fmt.Errorf("multiple analyses in document %s, pass an analysis name", doc.Name())
	}
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}
