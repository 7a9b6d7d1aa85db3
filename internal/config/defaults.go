package config

import "path/filepath"

// Default is the built-in configuration: file locations relative to the
// working directory plus the campus lookup tables. The zone table maps
// each functional zone to the meter display names found in the reading
// sources; unmapped names are surfaced by the area analysis.
func Default() Config {
	return Config{
		DataDir:       "data",
		HierarchyFile: "meter_hierarchy.xlsx",
		MainFile:      "readings.csv",
		AuxFile:       "readings_aux.csv",
		OutDir:        "out",
		MetricsFile:   filepath.FromSlash("out/waterworks.prom"),

		TargetPrefixes: []string{"401", "403", "405"},
		ExcludeNames:   nil,
		SpotlightCode:  "40404T",

		Activities: map[int]string{
			1: "WINTER_BREAK", 2: "WINTER_BREAK",
			3: "SPRING_TERM", 4: "SPRING_TERM", 5: "SPRING_TERM", 6: "SPRING_TERM",
			7: "SUMMER_BREAK", 8: "SUMMER_BREAK",
			9: "AUTUMN_TERM", 10: "AUTUMN_TERM", 11: "AUTUMN_TERM", 12: "AUTUMN_TERM",
		},

		Zones: map[string][]string{
			"DORMITORY": {
				"第一学生宿舍", "第二学生宿舍", "第三学生宿舍", "第四学生宿舍",
				"第五学生宿舍", "留学生楼", "宿舍热泵热水",
			},
			"DINING": {
				"第一食堂", "第二食堂", "第五食堂",
			},
			"TEACHING": {
				"图书馆", "教学大楼总表", "科学楼", "东大楼", "西大楼", "种子楼",
			},
			"OFFICE": {
				"行政楼", "离退休活动室", "司法鉴定中心",
			},
			"LOGISTICS": {
				"后勤楼", "校医院", "锅炉房", "污水处理", "中心大楼泵房", "高配房",
			},
			"RECREATION": {
				"游泳池", "体育馆", "浴室", "教育超市", "田径场厕所",
			},
			"GREENING": {
				"植物园", "养殖馆", "农业试验站大棚", "东大门大棚",
			},
		},
	}
}
