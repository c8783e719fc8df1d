package shader

import "fireball/internal/engine3D/gpu"

// Attribute and uniform names shared with the GLSL sources in glsl/.
const (
	AttrPosition = "vs_Pos"
	AttrNormal   = "vs_Nor"
	AttrColor    = "vs_Col"

	UniformModel          = "u_Model"
	UniformModelInvTr     = "u_ModelInvTr"
	UniformViewProj       = "u_ViewProj"
	UniformColor          = "u_Color"
	UniformTime           = "u_Time"
	UniformGradientType   = "u_GradientType"
	UniformSwayLevel      = "u_swayLevel"
	UniformFrameThreshold = "u_frameThreshold"
	UniformCameraPos      = "u_CamPos"
	UniformResolution     = "u_Resolution"
	UniformScene          = "u_Scene"
	UniformBloom          = "u_Bloom"
)

// Attributes holds the vertex inputs of a linked program.
type Attributes struct {
	Pos gpu.Location
	Nor gpu.Location
	// Col is resolved but no pass supplies per-vertex color.
	Col gpu.Location
}

// Uniforms holds every uniform slot a program may declare.
type Uniforms struct {
	Model          gpu.Location
	ModelInvTr     gpu.Location
	ViewProj       gpu.Location
	Color          gpu.Location
	Time           gpu.Location
	GradientType   gpu.Location
	SwayLevel      gpu.Location
	FrameThreshold gpu.Location
	CameraPos      gpu.Location
	Resolution     gpu.Location
	Scene          gpu.Location
	Bloom          gpu.Location
}

// ResolveLocations queries a linked program for all attribute and uniform
// locations used during rendering. Names the program does not declare
// resolve to absent locations.
func ResolveLocations(dev gpu.Device, id gpu.ProgramID) (Attributes, Uniforms) {
	attrib := func(name string) gpu.Location {
		return gpu.LocationOf(dev.AttribLocation(id, name))
	}
	uniform := func(name string) gpu.Location {
		return gpu.LocationOf(dev.UniformLocation(id, name))
	}

	attributes := Attributes{
		Pos: attrib(AttrPosition),
		Nor: attrib(AttrNormal),
		Col: attrib(AttrColor),
	}

	uniforms := Uniforms{
		Model:          uniform(UniformModel),
		ModelInvTr:     uniform(UniformModelInvTr),
		ViewProj:       uniform(UniformViewProj),
		Color:          uniform(UniformColor),
		Time:           uniform(UniformTime),
		GradientType:   uniform(UniformGradientType),
		SwayLevel:      uniform(UniformSwayLevel),
		FrameThreshold: uniform(UniformFrameThreshold),
		CameraPos:      uniform(UniformCameraPos),
		Resolution:     uniform(UniformResolution),
		Scene:          uniform(UniformScene),
		Bloom:          uniform(UniformBloom),
	}

	return attributes, uniforms
}

// Declared lists the uniform names the program actually has, for debug logging.
func (u Uniforms) Declared() []string {
	slots := []struct {
		name string
		loc  gpu.Location
	}{
		{UniformModel, u.Model},
		{UniformModelInvTr, u.ModelInvTr},
		{UniformViewProj, u.ViewProj},
		{UniformColor, u.Color},
		{UniformTime, u.Time},
		{UniformGradientType, u.GradientType},
		{UniformSwayLevel, u.SwayLevel},
		{UniformFrameThreshold, u.FrameThreshold},
		{UniformCameraPos, u.CameraPos},
		{UniformResolution, u.Resolution},
		{UniformScene, u.Scene},
		{UniformBloom, u.Bloom},
	}

	var names []string
	for _, s := range slots {
		if s.loc.Valid() {
			names = append(names, s.name)
		}
	}
	return names
}
