// This file declares the campus platform's concrete families. Memory and
// timeout values are tuned per workload; keep them declarative and
// inspectable here rather than computing them.

package families

import (
	"github.com/campustime/campus-deploy/config"
	"github.com/campustime/campus-deploy/functions"
)

// CourseReviews is the course review CRUD family. The mutating functions
// translate review text through an external API and require its
// service-account credential.
var CourseReviews = Spec{
	Family: "course-reviews",
	Functions: []FunctionSpec{
		{
			Name: "get", Intent: IntentRetrieve,
			CodeURI: "lambda/get-reviews", Handler: "get_reviews.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "post", Intent: IntentCreate,
			CodeURI: "lambda/post-review", Handler: "post_review.handler", Runtime: functions.RuntimePython,
			MemoryMB: 256, TimeoutSec: 5, LogRetention: functions.RetainOneMonth,
			RequiredEnv: []string{config.KeyAPIServiceKey},
		},
		{
			Name: "patch", Intent: IntentUpdate,
			CodeURI: "lambda/patch-review", Handler: "patch_review.handler", Runtime: functions.RuntimePython,
			MemoryMB: 256, TimeoutSec: 5, LogRetention: functions.RetainOneMonth,
			RequiredEnv: []string{config.KeyAPIServiceKey},
		},
		{
			Name: "delete", Intent: IntentDelete,
			CodeURI: "lambda/delete-review", Handler: "delete_review.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
	},
}

// Timetable is the timetable CRUD family plus the store-free import/export
// pair. The export function renders PDF and gets the largest footprint.
var Timetable = Spec{
	Family: "timetable",
	Functions: []FunctionSpec{
		{
			Name: "get", Intent: IntentRetrieve,
			CodeURI: "lambda/get-timetable", Handler: "get_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "post", Intent: IntentCreate,
			CodeURI: "lambda/post-timetable", Handler: "post_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "patch", Intent: IntentUpdate,
			CodeURI: "lambda/patch-timetable", Handler: "patch_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "delete", Intent: IntentDelete,
			CodeURI: "lambda/delete-timetable", Handler: "delete_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "import", Intent: IntentImport,
			CodeURI: "lambda/import-timetable", Handler: "import_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 256, TimeoutSec: 30, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "export", Intent: IntentExport,
			CodeURI: "lambda/export-timetable", Handler: "export_timetable.handler", Runtime: functions.RuntimePython,
			MemoryMB: 512, TimeoutSec: 60, LogRetention: functions.RetainOneMonth,
		},
	},
}

// Syllabus serves the scraped course catalog: one read function and the
// scraper's ingest function that refreshes the store.
var Syllabus = Spec{
	Family: "syllabus",
	Functions: []FunctionSpec{
		{
			Name: "get", Intent: IntentRetrieve,
			CodeURI: "lambda/get-syllabus", Handler: "get_syllabus.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "refresh", Intent: IntentUpdate,
			CodeURI: "lambda/refresh-syllabus", Handler: "refresh_syllabus.handler", Runtime: functions.RuntimePython,
			MemoryMB: 512, TimeoutSec: 300, LogRetention: functions.RetainThreeMonths,
		},
	},
}

// Career has a single read function; its write path is managed elsewhere.
var Career = Spec{
	Family: "career",
	Functions: []FunctionSpec{
		{
			Name: "get", Intent: IntentRetrieve,
			CodeURI: "lambda/get-career", Handler: "get_career.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
	},
}

// Forum is the discussion board CRUD family.
var Forum = Spec{
	Family: "forum",
	Functions: []FunctionSpec{
		{
			Name: "get", Intent: IntentRetrieve,
			CodeURI: "lambda/get-threads", Handler: "get_threads.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "post", Intent: IntentCreate,
			CodeURI: "lambda/post-thread", Handler: "post_thread.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "patch", Intent: IntentUpdate,
			CodeURI: "lambda/patch-thread", Handler: "patch_thread.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
		{
			Name: "delete", Intent: IntentDelete,
			CodeURI: "lambda/delete-thread", Handler: "delete_thread.handler", Runtime: functions.RuntimePython,
			MemoryMB: 128, TimeoutSec: 3, LogRetention: functions.RetainOneMonth,
		},
	},
}

// Platform lists every workload family in the deployment, in a fixed order
// so description builds are deterministic.
func Platform() []Spec {
	return []Spec{CourseReviews, Timetable, Syllabus, Career, Forum}
}
