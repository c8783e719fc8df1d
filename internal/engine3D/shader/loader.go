package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"fireball/internal/engine3D/gpu"
	"fireball/internal/utils"
)

// GLSLVersion is prepended to every stage before compilation.
const GLSLVersion = "#version 330 core"

//go:embed glsl/*.glsl
var embedded embed.FS

// Builtin holds the shader sources compiled into the binary.
var Builtin fs.FS = mustSub(embedded, "glsl")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadSource returns the text of <name>.glsl. A file under the assets
// directory's shaders/ folder overrides the built-in copy.
func LoadSource(name string) (string, error) {
	file := name
	if !strings.HasSuffix(file, ".glsl") {
		file += ".glsl"
	}

	rel := path.Join("shaders", file)
	if utils.AssetExists(rel) {
		overridePath := utils.ResolveAssetPath(rel)
		data, err := os.ReadFile(overridePath)
		if err == nil {
			utils.Info("Shader: using override %s", overridePath)
			return strings.Trim(string(data), "\ufeff"), nil
		}
		utils.Warn("Shader: could not read override %s: %v", overridePath, err)
	}

	data, err := fs.ReadFile(Builtin, file)
	if err != nil {
		return "", fmt.Errorf("shader source %s: %w", name, err)
	}
	return string(data), nil
}

// PreprocessShader prepends the GLSL version header and expands
// `#include "file"` lines. Each include is pasted at most once.
func PreprocessShader(source, name string) string {
	var sb strings.Builder
	sb.WriteString(GLSLVersion)
	sb.WriteString("\n")

	included := make(map[string]bool)
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#version") {
			utils.Debug("Shader: dropping %q from %s", trimmed, name)
			continue
		}
		if strings.HasPrefix(trimmed, "#include \"") && strings.HasSuffix(trimmed, "\"") {
			includeFile := strings.TrimSpace(trimmed[len("#include \"") : len(trimmed)-1])
			if included[includeFile] {
				continue
			}
			content, err := LoadSource(includeFile)
			if err != nil {
				utils.Warn("Shader: Could not resolve include %s in %s", includeFile, name)
				continue
			}
			sb.WriteString(content)
			sb.WriteString("\n")
			included[includeFile] = true
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func loadStage(ctx *gpu.Context, stage gpu.Stage, name string) (*Shader, error) {
	source, err := LoadSource(name)
	if err != nil {
		return nil, err
	}
	s, err := NewShader(ctx, stage, PreprocessShader(source, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// LoadProgram loads, preprocesses, compiles and links a vertex/fragment pair.
// The stage objects are released once the program is linked.
func LoadProgram(ctx *gpu.Context, vertName, fragName string) (*Program, error) {
	vert, err := loadStage(ctx, gpu.VertexStage, vertName)
	if err != nil {
		return nil, err
	}
	defer vert.Delete()

	frag, err := loadStage(ctx, gpu.FragmentStage, fragName)
	if err != nil {
		return nil, err
	}
	defer frag.Delete()

	prog, err := NewProgram(ctx, vert, frag)
	if err != nil {
		return nil, fmt.Errorf("%s+%s: %w", vertName, fragName, err)
	}
	prog.Name = strings.TrimSuffix(fragName, "-frag")

	utils.Info("Shader: %s - Loaded successfully (ID: %d, uniforms: %v)", prog.Name, prog.ID, prog.Uniforms.Declared())
	return prog, nil
}
