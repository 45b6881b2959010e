package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/geometrictools/geom"
	"github.com/akmonengine/geometrictools/hull"
	"github.com/akmonengine/geometrictools/measure"
	"github.com/go-gl/mathgl/mgl64"
)

// MeasurementReporter receives the results of every measurement
type MeasurementReporter interface {
	ReportScalar(name string, value string)
	ReportSurface(surface measure.Surface, label string)
	ReportBox(box geom.OrientedBox, label string)
}

// PrintReporter prints the results to stdout
type PrintReporter struct{}

func (r *PrintReporter) ReportScalar(name string, value string) {
	fmt.Printf("📏 %s: %s\n", name, value)
}

func (r *PrintReporter) ReportSurface(surface measure.Surface, label string) {
	fmt.Printf("🔺 Area: %s\n", label)
	fmt.Printf("   Hull dimension: %d\n", surface.Dimension)
	fmt.Printf("   Triangles: %d\n", len(surface.Triangles))
	for i, t := range surface.Triangles {
		fmt.Printf("   Triangle %d: %v\n", i, t)
	}
}

func (r *PrintReporter) ReportBox(box geom.OrientedBox, label string) {
	fmt.Printf("📦 Volume: %s\n", label)
	fmt.Printf("   Center: %v\n", box.Center)
	for i, axis := range box.Axis {
		fmt.Printf("   Axis %d: %v (extent=%.4f)\n", i, axis, box.Extent[i])
	}
}

// SetupMarkers places markers on the corners of a tilted 2 x 1 x 0.5 crate,
// plus a few inside it
func SetupMarkers() geom.PointCloud {
	rotation := mgl64.QuatRotate(math.Pi/7, mgl64.Vec3{1, 2, 0}.Normalize())
	position := mgl64.Vec3{0.5, 1.2, -3.0}

	var markers geom.PointCloud
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.25, 0.25} {
				markers = append(markers, rotation.Rotate(mgl64.Vec3{x, y, z}).Add(position))
			}
		}
	}

	// Markers inside the crate change nothing
	markers = append(markers,
		position,
		rotation.Rotate(mgl64.Vec3{0.3, -0.2, 0.1}).Add(position),
	)

	return markers
}

// RunMeasurements measures the markers with every tool
func RunMeasurements(presets measure.Presets, markers geom.PointCloud, reporter MeasurementReporter) {
	reporter.ReportScalar("Distance", presets.Label(presets.Distance(markers[0], markers[7]), 1))
	reporter.ReportScalar("Angle", presets.Label(presets.Angle(markers[1], markers[0], markers[2]), 0))
	reporter.ReportScalar("Trace", presets.Label(presets.Trace(markers[:4]), 1))

	surface := presets.Area(markers)
	reporter.ReportSurface(surface, presets.Label(surface.Area, 2))

	box, volume := presets.Volume(markers)
	reporter.ReportBox(box, presets.Label(volume, 3))
}

func main() {
	fmt.Println("🧪 Marker measurements")
	fmt.Println("======================")

	markers := SetupMarkers()
	fmt.Printf("Markers: %d\n", len(markers))
	fmt.Println()

	reporter := &PrintReporter{}

	presets := measure.DefaultPresets()
	RunMeasurements(presets, markers, reporter)
	fmt.Println()

	// Same markers measured in centimetres
	presets.ScaleFactor = 100
	presets.Unit = measure.Centimetre
	RunMeasurements(presets, markers, reporter)
	fmt.Println()

	h := hull.Compute(markers, int(presets.Workers))
	fmt.Printf("Hull volume check: %.4f m³ (crate is 1.0000 m³)\n", h.Volume(markers))
}
