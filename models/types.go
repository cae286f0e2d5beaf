package models

// Coordinate system constants
const (
	CoordGeo = "geo"
	CoordXYZ = "xyz"
)

// Field is one entry of a calibration file: a value and what it means.
type Field struct {
	Name        string
	Value       any
	Description string
}

// Parameter bundle types

type Metadata struct {
	Name             string `json:"name" yaml:"name"`
	SerialNumber     string `json:"serial_number" yaml:"serial_number"`
	CameraNumber     int64  `json:"camera_number" yaml:"camera_number"`
	CalibrationDate  int64  `json:"calibration_date" yaml:"calibration_date"`
	CoordinateSystem string `json:"coordinate_system" yaml:"coordinate_system"`
}

func (m Metadata) Fields() []Field {
	return []Field{
		{"name", m.Name, "name of the camera station"},
		{"serial_number", m.SerialNumber, "camera serial number"},
		{"camera_number", m.CameraNumber, "camera number for the corresponding station"},
		{"calibration_date", m.CalibrationDate, "date when the camera was calibrated"},
		{"coordinate_system", m.CoordinateSystem, `coordinate system for extrinsic parameters. Either "geo" or "xyz"`},
	}
}

type Intrinsics struct {
	NU  int64   `json:"NU" yaml:"NU"`
	NV  int64   `json:"NV" yaml:"NV"`
	Fx  float64 `json:"fx" yaml:"fx"`
	Fy  float64 `json:"fy" yaml:"fy"`
	C0U float64 `json:"c0U" yaml:"c0U"`
	C0V float64 `json:"c0V" yaml:"c0V"`
	D1  float64 `json:"d1" yaml:"d1"`
	D2  float64 `json:"d2" yaml:"d2"`
	D3  float64 `json:"d3" yaml:"d3"`
	T1  float64 `json:"t1" yaml:"t1"`
	T2  float64 `json:"t2" yaml:"t2"`
}

func (in Intrinsics) Fields() []Field {
	return []Field{
		{"NU", in.NU, "number of pixel columns"},
		{"NV", in.NV, "number of pixel rows"},
		{"fx", in.Fx, "x component of the focal length (pixels)"},
		{"fy", in.Fy, "y component of the focal length (pixels)"},
		{"c0U", in.C0U, "first component of the principal point"},
		{"c0V", in.C0V, "second component of the principal point"},
		{"d1", in.D1, "first radial distortion coefficient"},
		{"d2", in.D2, "second radial distortion coefficient"},
		{"d3", in.D3, "third radial distortion coefficient"},
		{"t1", in.T1, "first tangential distortion coefficient"},
		{"t2", in.T2, "second tangential distortion coefficient"},
	}
}

type Extrinsics struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	A float64 `json:"a" yaml:"a"`
	T float64 `json:"t" yaml:"t"`
	R float64 `json:"r" yaml:"r"`
}

func (e Extrinsics) Fields() []Field {
	return []Field{
		{"x", e.X, "x location of camera"},
		{"y", e.Y, "y location of camera"},
		{"z", e.Z, "z location of camera"},
		{"a", e.A, "camera azimuth orientation"},
		{"t", e.T, "camera tilt orientation"},
		{"r", e.R, "camera roll orientation"},
	}
}

type LocalOrigin struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Angd float64 `json:"angd" yaml:"angd"`
}

func (o LocalOrigin) Fields() []Field {
	return []Field{
		{"x", o.X, "x location of site origin"},
		{"y", o.Y, "y location of site origin"},
		{"angd", o.Angd, "orientation of the local grid"},
	}
}

// CameraParams is the calibration of one camera at a point in time.
type CameraParams struct {
	CameraID    string     `json:"camera_id"`
	Metadata    Metadata   `json:"metadata"`
	Intrinsics  Intrinsics `json:"intrinsics"`
	Extrinsics  Extrinsics `json:"extrinsics"`
	GeometrySeq *int64     `json:"geometry_seq,omitempty"` // nil when the camera has no geometry
}

// StationParams bundles every camera active at a station at Time.
type StationParams struct {
	StationID   string         `json:"station_id"`
	ShortName   string         `json:"short_name"`
	SiteID      string         `json:"site_id"`
	Time        int64          `json:"time"`
	Cameras     []CameraParams `json:"cameras"`
	LocalOrigin LocalOrigin    `json:"local_origin"`
}

// API response types

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type SiteSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
