package bench

import (
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

type vec3 struct {
	x, y, z float64
}

func (v vec3) dot(o vec3) float64 {
	return v.x*o.x + v.y*o.y + v.z*o.z
}

func (v vec3) length() float64 {
	return math.Sqrt(v.dot(v))
}

func (v vec3) normalize() vec3 {
	l := v.length()
	if l > 0 {
		return vec3{v.x / l, v.y / l, v.z / l}
	}
	return vec3{}
}

func (v vec3) sub(o vec3) vec3 {
	return vec3{v.x - o.x, v.y - o.y, v.z - o.z}
}

type ray struct {
	origin, direction vec3
}

type sphere struct {
	center vec3
	radius float64
}

// intersect returns the nearest positive ray parameter, or false on a miss.
func (s sphere) intersect(r ray) (float64, bool) {
	oc := r.origin.sub(s.center)
	a := r.direction.dot(r.direction)
	b := 2 * oc.dot(r.direction)
	c := oc.dot(oc) - s.radius*s.radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := (-b - sq) / (2 * a); t > 0 {
		return t, true
	}
	if t := (-b + sq) / (2 * a); t > 0 {
		return t, true
	}
	return 0, false
}

// benchScene is the fixed three-sphere scene every ray tracing run renders.
func benchScene() []sphere {
	return []sphere{
		{center: vec3{0, 0, -1}, radius: 0.5},
		{center: vec3{1, 0, -1.5}, radius: 0.3},
		{center: vec3{-1, -0.5, -1.2}, radius: 0.4},
	}
}

func traceRay(r ray, spheres []sphere, depth int) vec3 {
	if depth == 0 {
		return vec3{}
	}

	closest := math.Inf(1)
	hitIdx := -1
	for i, s := range spheres {
		if t, ok := s.intersect(r); ok && t < closest {
			closest = t
			hitIdx = i
		}
	}
	if hitIdx < 0 {
		return vec3{0.5, 0.7, 1.0} // sky
	}

	s := spheres[hitIdx]
	hit := vec3{
		r.origin.x + closest*r.direction.x,
		r.origin.y + closest*r.direction.y,
		r.origin.z + closest*r.direction.z,
	}
	normal := hit.sub(s.center).normalize()

	d := r.direction.dot(normal)
	reflectedDir := vec3{
		r.direction.x - 2*d*normal.x,
		r.direction.y - 2*d*normal.y,
		r.direction.z - 2*d*normal.z,
	}.normalize()
	reflected := ray{
		origin:    vec3{hit.x + 0.01*normal.x, hit.y + 0.01*normal.y, hit.z + 0.01*normal.z},
		direction: reflectedDir,
	}
	rc := traceRay(reflected, spheres, depth-1)

	return vec3{
		(normal.x+1)*0.5 + rc.x*0.3,
		(normal.y+1)*0.5 + rc.y*0.3,
		(normal.z+1)*0.5 + rc.z*0.3,
	}
}

func renderRow(y, width, height, depth int, spheres []sphere, out []vec3) {
	for x := 0; x < width; x++ {
		r := ray{
			direction: vec3{
				(float64(x) - float64(width)/2) / (float64(width) / 2),
				(float64(y) - float64(height)/2) / (float64(height) / 2),
				-1,
			}.normalize(),
		}
		out[x] = traceRay(r, spheres, depth)
	}
}

func singleCoreRayTracing(p workload.Params) Result {
	width, height, depth := p.RayTracingWidth, p.RayTracingHeight, p.RayTracingDepth
	start := time.Now()

	spheres := benchScene()
	image := make([]vec3, width*height)
	for y := 0; y < height; y++ {
		renderRow(y, width, height, depth, spheres, image[y*width:(y+1)*width])
	}

	elapsed := time.Since(start)
	totalRays := float64(width * height)
	return Result{
		Name:         WorkloadRayTracing.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: totalRays / elapsed.Seconds(),
		Valid:        len(image) > 0,
		Metrics: map[string]any{
			"resolution":      []int{width, height},
			"max_depth":       depth,
			"ray_count":       totalRays,
			"pixels_rendered": len(image),
		},
	}
}

func multiCoreRayTracing(p workload.Params) Result {
	width, height, depth := p.RayTracingWidth, p.RayTracingHeight, p.RayTracingDepth
	threads := runtime.NumCPU()
	start := time.Now()

	spheres := benchScene()
	image := make([]vec3, width*height)

	var g errgroup.Group
	g.SetLimit(threads)
	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			renderRow(y, width, height, depth, spheres, image[y*width:(y+1)*width])
			return nil
		})
	}
	g.Wait()

	elapsed := time.Since(start)
	totalRays := float64(width * height)
	return Result{
		Name:         WorkloadRayTracing.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: totalRays / elapsed.Seconds(),
		Valid:        len(image) > 0,
		Metrics: map[string]any{
			"resolution":      []int{width, height},
			"max_depth":       depth,
			"ray_count":       totalRays,
			"pixels_rendered": len(image),
			"threads":         threads,
		},
	}
}
