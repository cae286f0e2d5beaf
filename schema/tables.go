// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

// Table names
const (
	Site        = "site"
	Station     = "station"
	CameraModel = "cameramodel"
	LensModel   = "lensmodel"
	IP          = "ip"
	Camera      = "camera"
	Geometry    = "geometry"
	GCP         = "gcp"
	UsedGCP     = "usedgcp"
)

// GeometrySequence is the only foreign key that references a seq.
const GeometrySequence = "geometrySequence"

// MaxIDLength bounds the string id of every id table.
const MaxIDLength = 7

func col(name string, typ ColumnType) ColumnDef { return ColumnDef{Name: name, Type: typ} }

func fk(column, parent string) ForeignKey {
	return ForeignKey{Column: column, Parent: parent, ParentKey: KeyID}
}

// Insert order: parents first.
var tables = []TableDef{
	{
		Name:     Site,
		Identity: KeyID,
		Columns: []ColumnDef{
			col("id", Text), col("siteID", Text), col("name", Text),
			col("lat", Real), col("lon", Real), col("elev", Real),
			col("zDatumNote", Text), col("TZOffset", Integer),
			col("tideSource", Integer), col("waveSource", Integer),
			col("degFromN", Real), col("TZName", Text),
			col("useLocalNames", Integer), col("sortLocalTime", Integer),
			col("UTMEasting", Real), col("UTMNorthing", Real), col("UTMZone", Text),
			col("horizontalDatumName", Text), col("EllipsoidName", Text),
			col("SemimajorAxis", Real), col("DenominatorOfFlatteningRatio", Real),
			col("GeoID", Text), col("AltitudeDatumName", Text),
			col("AltitudeDistanceUnits", Text), col("ContactOrganization", Text),
			col("ContactPerson", Text), col("ContactEmail", Text),
			col("ContactVoiceTelephone", Text), col("ContactAddress", Text),
			col("timestamp", Integer),
		},
	},
	{
		Name:     CameraModel,
		Identity: KeyID,
		Columns: []ColumnDef{
			col("id", Text), col("make", Text), col("model", Text),
			col("color", Integer), col("size", Real), col("timestamp", Integer),
		},
	},
	{
		Name:     LensModel,
		Identity: KeyID,
		Columns: []ColumnDef{
			col("id", Text), col("make", Text), col("model", Text),
			col("f", Real), col("aperture", Real), col("autoIris", Integer),
			col("timestamp", Integer),
		},
	},
	{
		Name:     IP,
		Identity: KeyID,
		Columns: []ColumnDef{
			col("id", Text), col("make", Text), col("model", Text), col("name", Text),
			col("width", Integer), col("height", Integer),
			col("pixelWidth", Real), col("pixelHeight", Real),
			col("timestamp", Integer),
		},
	},
	{
		Name:        Station,
		Identity:    KeyID,
		ForeignKeys: []ForeignKey{fk("siteID", Site)},
		Columns: []ColumnDef{
			col("id", Text), col("shortName", Text), col("name", Text),
			col("siteID", Text), col("stationID", Text),
			col("timeIN", Integer), col("timeOUT", Integer),
			col("timestamp", Integer),
		},
	},
	{
		Name:        GCP,
		Identity:    KeyID,
		ForeignKeys: []ForeignKey{fk("siteID", Site)},
		Columns: []ColumnDef{
			col("id", Text), col("name", Text), col("siteID", Text),
			col("x", Real), col("y", Real), col("z", Real),
			col("timeIN", Integer), col("timeOUT", Integer),
			col("timestamp", Integer),
		},
	},
	{
		Name:     Camera,
		Identity: KeyID,
		ForeignKeys: []ForeignKey{
			fk("stationID", Station),
			fk("modelID", CameraModel),
			fk("lensmodelID", LensModel),
			fk("li_IP", IP),
		},
		Columns: []ColumnDef{
			col("id", Text), col("stationID", Text), col("modelID", Text),
			col("syncsToID", Text), col("lensmodelID", Text), col("li_IP", Text),
			col("lensSN", Text), col("cameraSN", Text), col("filters", Text),
			col("orientation", Text), col("cameraNumber", Integer),
			col("timeIN", Integer), col("timeOUT", Integer),
			col("x", Real), col("y", Real), col("z", Real),
			col("polarizerFlag", Integer), col("polAngle", Real),
			col("K", Matrix), col("kc", Matrix),
			col("timestamp", Integer),
		},
	},
	{
		Name:        Geometry,
		Identity:    KeySeq,
		ForeignKeys: []ForeignKey{fk("cameraID", Camera)},
		Columns: []ColumnDef{
			col("cameraID", Text), col("m", Matrix),
			col("azimuth", Real), col("tilt", Real), col("roll", Real),
			col("fov", Real), col("imagePath", Text),
			col("whenDone", Integer), col("whenValid", Integer),
			col("err", Real), col("version", Real), col("solvedVars", Text),
			col("user", Text), col("tiltCI", Real), col("azimuthCI", Real),
			col("rollCI", Real), col("timestamp", Integer),
		},
	},
	{
		Name:     UsedGCP,
		Identity: KeySeq,
		ForeignKeys: []ForeignKey{
			fk("gcpID", GCP),
			{Column: GeometrySequence, Parent: Geometry, ParentKey: KeySeq},
		},
		Columns: []ColumnDef{
			col("gcpID", Text), col(GeometrySequence, Integer),
			col("U", Real), col("V", Real), col("timestamp", Integer),
		},
	},
}

var byName = func() map[string]TableDef {
	m := make(map[string]TableDef, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}()
