package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

// Voxel camera constants. Angles are in 1/1920 of a turn and positions are
// 20.12 fixed point while marching.
const (
	voxelWidth  = 640
	voxelHeight = 400

	angle5   = 25
	angle30  = 160
	angle180 = 960
	angle360 = 1920

	fixShift     = 12
	fixMul       = 1 << fixShift
	fieldSize    = 512
	fieldShift   = 9
	terrainScale = 2
	viewPlane    = voxelWidth / 64
	maxAltitude  = 1000
	minAltitude  = 50
	maxSpeed     = 32
	maxSteps     = 200
	startPitch   = 80
	startZ       = 700
	autoSpeed    = 8
)

// Voxel ray-casts a height field one screen column at a time, drawing each
// column bottom-up over a scrolling sky. An autopilot flies the camera
// unless a front-end steers it.
type Voxel struct {
	canvas
	textures texture.Provider
	view     *raster.FrameBuffer
	sky      *raster.FrameBuffer
	height   []int
	color    []uint32
	cos, sin lut.Table // angle360 entries, ×4096
	dslope   int

	x, y, z   int
	pitch     int
	heading   int
	speed     int
	Autopilot bool
}

func newVoxel(o fx.Options) fx.Effect {
	return &Voxel{textures: o.Provider(), Autopilot: true}
}

func (v *Voxel) Setup(w, h int) error {
	if err := v.alloc(w, h); err != nil {
		return err
	}
	hm, err := texture.Sized(v.textures, "heightmap", fieldSize, fieldSize)
	if err != nil {
		return fmt.Errorf("voxel: %w", err)
	}
	cm, err := texture.Sized(v.textures, "colormap", fieldSize, fieldSize)
	if err != nil {
		return fmt.Errorf("voxel: %w", err)
	}
	sky, err := texture.Sized(v.textures, "sunset", voxelWidth, voxelHeight/2)
	if err != nil {
		return fmt.Errorf("voxel: %w", err)
	}
	v.sky = sky
	v.color = cm.Pix
	v.height = make([]int, len(hm.Pix))
	for i, c := range hm.Pix {
		v.height[i] = int(c & 0xff)
	}
	v.cos = lut.Build(angle360, func(i int) int {
		return int(math.Cos(2*math.Pi*float64(i)/angle360) * fixMul)
	})
	v.sin = lut.Build(angle360, func(i int) int {
		return int(math.Sin(2*math.Pi*float64(i)/angle360) * fixMul)
	})
	v.dslope = fixMul / viewPlane
	if v.view == nil {
		v.view = raster.NewFrameBuffer(voxelWidth, voxelHeight)
	}

	v.x, v.y, v.z = fieldSize/2, fieldSize/2, startZ
	v.pitch = startPitch
	v.heading = angle180
	v.speed = 0
	if v.Autopilot {
		v.speed = autoSpeed
	}
	return nil
}

// Steer applies one tick of input: turn (+1 left, -1 right), throttle
// (±1 changes speed by 2) and climb (±1 changes altitude by 8). Steering
// switches the autopilot off.
func (v *Voxel) Steer(turn, throttle, climb int) {
	v.Autopilot = false
	v.heading += turn * angle5
	switch {
	case throttle > 0 && v.speed < maxSpeed:
		v.speed += 2
	case throttle < 0 && v.speed > 1:
		v.speed -= 2
	}
	switch {
	case climb > 0 && v.z < maxAltitude:
		v.z += 8
	case climb < 0 && v.z > minAltitude:
		v.z -= 8
	}
}

// Camera returns the map position, altitude and heading.
func (v *Voxel) Camera() (x, y, z, heading int) {
	return v.x, v.y, v.z, v.heading
}

func (v *Voxel) move() {
	if v.Autopilot {
		v.speed = autoSpeed
		v.heading++
	}
	v.heading = lut.Wrap(v.heading, angle360)
	v.x += (v.speed * v.cos.At(v.heading)) >> fixShift
	v.y += (v.speed * v.sin.At(v.heading)) >> fixShift
	if v.x >= fieldSize {
		v.x = 0
	} else if v.x < 0 {
		v.x = fieldSize - 1
	}
	if v.y >= fieldSize {
		v.y = 0
	} else if v.y < 0 {
		v.y = fieldSize - 1
	}
}

func (v *Voxel) drawSky() {
	pix := v.view.Pix
	shift := v.heading / 3
	for y := 0; y < voxelHeight; y++ {
		sy := min(y, v.sky.Height-1)
		for x := 0; x < voxelWidth; x++ {
			pix[y*voxelWidth+x] = v.sky.Wrapped(x-shift, sy)
		}
	}
}

func (v *Voxel) Step() {
	v.move()
	v.drawSky()

	const w, h = voxelWidth, voxelHeight
	pix := v.view.Pix
	vpx, vpy, vpz := v.x<<fixShift, v.y<<fixShift, v.z<<fixShift
	ang := v.heading + angle30
	for col := 0; col < w-1; col++ {
		xr, yr, zr := vpx, vpy, vpz
		dx := v.cos.At(ang) << 1
		dy := v.sin.At(ang) << 1
		dz := v.dslope * (v.pitch - h)
		ptr := w*(h-1) + col
		scale := 0
		row := 0
		for step := 0; step < maxSteps; step++ {
			addr := ((xr>>fixShift)&(fieldSize-1)) + ((yr>>fixShift)&(fieldSize-1))<<fieldShift
			column := v.height[addr] << (fixShift + terrainScale)
			if column > zr {
				for {
					pix[ptr] = v.color[addr]
					dz += v.dslope
					zr += scale
					ptr -= w
					row++
					if row >= h {
						step = maxSteps
						break
					}
					if zr > column {
						break
					}
				}
			}
			xr += dx
			yr += dy
			zr += dz
			scale += v.dslope
		}
		ang--
	}
	stretch(v.fb, v.view)
}
