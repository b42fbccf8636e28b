package renderer

import (
	"fmt"
	"strings"

	"GopherSky/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

func NewShader(name, vertexSource, fragmentSource string) Shader {
	return Shader{
		Name:           name,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
	}
}

// Compile builds and links the program. Calling it again on a compiled shader is a no-op.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	vert, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s: %w", shader.Name, err)
	}
	frag, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return fmt.Errorf("%s: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vert, frag)
	if err != nil {
		return fmt.Errorf("%s: %w", shader.Name, err)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader compiled", zap.String("name", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) IsCompiled() bool {
	return shader.isCompiled
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

// GenShader compiles one stage. Sources may omit the trailing NUL.
func GenShader(source string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("renderer: compile shader type %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("renderer: link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

// Lit surfaces. Same vertex layout as every mesh: position, uv, normal.
var phongVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(model) * inNormal; // Use this if the model matrix has no non-uniform scaling
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
`

var phongFragmentShaderSource = `#version 410 core
in vec3 Normal;
in vec3 FragPos;

uniform vec3 lightDirection;
uniform vec3 lightColor;
uniform vec3 ambientColor;
uniform float lightIntensity;
uniform vec3 viewPos;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;

out vec4 FragColor;

void main() {
    vec3 ambient = ambientColor * diffuseColor;

    vec3 norm = normalize(Normal);
    vec3 lightDir = normalize(lightDirection);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = diff * lightColor * diffuseColor;

    vec3 viewDir = normalize(viewPos - FragPos);
    vec3 reflectDir = reflect(-lightDir, norm);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
    vec3 specular = spec * lightColor * specularColor;

    vec3 result = ambient + (diffuse + specular) * lightIntensity;
    FragColor = vec4(result, 1.0);
}
`

func InitPhongShader() Shader {
	return NewShader("phong", phongVertexShaderSource, phongFragmentShaderSource)
}
