package gldriver

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/project"
)

// SetUniforms binds program and uploads every value it has an active
// uniform for. It returns the names that were uploaded; the compiler drops
// uniforms a shader never reads, and those are skipped.
func SetUniforms(program uint32, values []project.Value) ([]string, error) {
	log := logger.Named("gldriver")
	gl.UseProgram(program)

	var set []string
	for _, v := range values {
		loc := UniformLocation(program, v.Name)
		if loc < 0 {
			log.Debug("uniform inactive", zap.String("name", v.Name))
			continue
		}
		if err := upload(loc, v); err != nil {
			return set, err
		}
		set = append(set, v.Name)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return set, fmt.Errorf("uploading uniforms: GL error 0x%x", code)
	}
	return set, nil
}

func upload(loc int32, v project.Value) error {
	want := map[project.UniformType]int{
		project.TypeInt:   1,
		project.TypeBool:  1,
		project.TypeFloat: 1,
		project.TypeVec2:  2,
		project.TypeVec3:  3,
		project.TypeVec4:  4,
		project.TypeMat4:  16,
	}[v.Type]
	if want == 0 || len(v.Data) != want {
		return fmt.Errorf("uniform %s: %d values for type %q", v.Name, len(v.Data), v.Type)
	}

	switch v.Type {
	case project.TypeInt, project.TypeBool:
		gl.Uniform1i(loc, int32(v.Data[0]))
	case project.TypeFloat:
		gl.Uniform1f(loc, v.Data[0])
	case project.TypeVec2:
		gl.Uniform2fv(loc, 1, &v.Data[0])
	case project.TypeVec3:
		gl.Uniform3fv(loc, 1, &v.Data[0])
	case project.TypeVec4:
		gl.Uniform4fv(loc, 1, &v.Data[0])
	case project.TypeMat4:
		gl.UniformMatrix4fv(loc, 1, false, &v.Data[0])
	}
	return nil
}
