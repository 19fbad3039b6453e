package typings

import (
	"context"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/host"
)

// Header is written above the package clause of every generated file.
const Header = "Code generated by jsbridge typings. DO NOT EDIT."

// Generator renders typings for one package from a host's reflection data.
type Generator struct {
	refl        host.Reflection
	packageName string

	used map[string]string
}

func NewGenerator(refl host.Reflection, packageName string) *Generator {
	return &Generator{refl: refl, packageName: packageName}
}

// Generate is a shorthand for NewGenerator(refl, pkg).Generate(ctx).
func Generate(ctx context.Context, refl host.Reflection, pkg string) (*jen.File, error) {
	return NewGenerator(refl, pkg).Generate(ctx)
}

// Write generates the typings and saves them to path, replacing the
// previous output. The old file is removed through the host first.
func Write(ctx context.Context, refl host.Reflection, pkg, path string) error {
	file, err := Generate(ctx, refl, pkg)
	if err != nil {
		return err
	}
	if err := refl.DeleteFile(ctx, path); err != nil {
		return fmt.Errorf("failed to remove previous typings: %w", err)
	}
	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save typings to %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Typings written.", "path", path, "package", pkg)
	return nil
}

// Generate builds the file. Identifier clashes between generated names are
// reported as errors rather than producing code that does not compile.
func (g *Generator) Generate(ctx context.Context) (*jen.File, error) {
	logger := ctxlog.FromContext(ctx).With("package", g.packageName)
	g.used = make(map[string]string)

	file := jen.NewFile(g.packageName)
	file.HeaderComment(Header)

	steps := []struct {
		name string
		fn   func(context.Context, *jen.File) error
	}{
		{"classes", g.generateClasses},
		{"singletons", g.generateSingletons},
		{"utility functions", g.generateUtilities},
		{"global constants", g.generateGlobalConstants},
	}
	for _, step := range steps {
		if err := step.fn(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", step.name, err)
		}
		logger.Debug("Typings section generated.", "section", step.name)
	}
	return file, nil
}

// claim reserves a generated identifier for the host name it came from.
func (g *Generator) claim(id, source string) error {
	if prev, ok := g.used[id]; ok {
		return fmt.Errorf("identifier %s generated for both %q and %q", id, prev, source)
	}
	g.used[id] = source
	return nil
}

func (g *Generator) generateClasses(ctx context.Context, file *jen.File) error {
	classes, err := g.refl.GetClasses(ctx)
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		return nil
	}

	methods := jen.Dict{}
	for _, class := range classes {
		id := "Class" + exportedName(class.Name)
		if err := g.claim(id, class.Name); err != nil {
			return err
		}

		doc, ok, err := g.refl.GetClassDoc(ctx, class.Name)
		if err != nil {
			return err
		}
		if brief := firstSentence(doc.BriefDescription); ok && brief != "" {
			file.Comment(id + ": " + brief)
		}
		file.Const().Id(id).Op("=").Lit(class.Name)

		names := class.MethodNames()
		methods[jen.Lit(class.Name)] = jen.Index().String().ValuesFunc(func(vg *jen.Group) {
			for _, name := range names {
				vg.Lit(name)
			}
		})
	}

	file.Line()
	file.Comment("ClassMethods lists the method names of every class in declaration order.")
	file.Var().Id("ClassMethods").Op("=").Map(jen.String()).Index().String().Values(methods)
	return nil
}

func (g *Generator) generateSingletons(ctx context.Context, file *jen.File) error {
	singletons, err := g.refl.GetSingletons(ctx)
	if err != nil {
		return err
	}
	if len(singletons) == 0 {
		return nil
	}

	var defs []jen.Code
	for _, s := range singletons {
		id := "Singleton" + exportedName(s.Name)
		if err := g.claim(id, s.Name); err != nil {
			return err
		}
		defs = append(defs, jen.Id(id).Op("=").Lit(s.Name))
	}

	file.Comment("Singleton names.")
	file.Const().Defs(defs...)
	return nil
}

func (g *Generator) generateUtilities(ctx context.Context, file *jen.File) error {
	utilities, err := g.refl.GetUtilityFunctions(ctx)
	if err != nil {
		return err
	}
	if len(utilities) == 0 {
		return nil
	}

	var defs []jen.Code
	for _, fn := range utilities {
		id := "Utility" + exportedName(fn.Name)
		if err := g.claim(id, fn.Name); err != nil {
			return err
		}
		defs = append(defs, jen.Id(id).Op("=").Lit(fn.Name))
	}

	file.Comment("Utility function names.")
	file.Const().Defs(defs...)
	return nil
}

func (g *Generator) generateGlobalConstants(ctx context.Context, file *jen.File) error {
	groups, err := g.refl.GetGlobalConstants(ctx)
	if err != nil {
		return err
	}

	for _, group := range groups {
		typeName := exportedName(group.Name)
		if err := g.claim(typeName, group.Name); err != nil {
			return err
		}

		var defs []jen.Code
		for _, name := range group.SortedNames() {
			id := typeName + exportedName(name)
			if err := g.claim(id, group.Name+"."+name); err != nil {
				return err
			}
			defs = append(defs, jen.Id(id).Id(typeName).Op("=").Lit(int(group.Values[name])))
		}

		file.Commentf("%s is the global constant group %s.", typeName, group.Name)
		file.Type().Id(typeName).Int64()
		if len(defs) > 0 {
			file.Const().Defs(defs...)
		}
	}
	return nil
}
