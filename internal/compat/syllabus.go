// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compat

import "strings"

// Syllabus data carried over from the legacy engine. No table exists for
// it; the entries are static drive links that predate the migration.

// SyllabusBatch is one batch entry of the syllabus listing.
type SyllabusBatch struct {
	Batch string `json:"batch"`
	Route string `json:"route"`
}

// SyllabusDept is one department entry under a batch.
type SyllabusDept struct {
	Dept  string `json:"dept"`
	Route string `json:"route"`
}

// SyllabusTopic is one syllabus document link.
type SyllabusTopic struct {
	Topic string `json:"topic"`
	URL   string `json:"url"`
}

var syllabusBatches = []SyllabusBatch{
	{Batch: "45", Route: "app/syllabus/45"},
	{Batch: "46", Route: "app/syllabus/46"},
}

var syllabusDepts = map[string][]SyllabusDept{
	"45": {
		{Dept: "AE", Route: "app/syllabus/45/ae"},
		{Dept: "YE", Route: "app/syllabus/45/ye"},
		{Dept: "FE", Route: "app/syllabus/45/fe"},
		{Dept: "IPE", Route: "app/syllabus/45/ipe"},
		{Dept: "WPE", Route: "app/syllabus/45/wpe"},
		{Dept: "TEM", Route: "app/syllabus/45/tem"},
		{Dept: "DCE", Route: "app/syllabus/45/dce"},
		{Dept: "TFD", Route: "app/syllabus/45/tfd"},
		{Dept: "TMDM", Route: "app/syllabus/45/tmdm"},
		{Dept: "ESE", Route: "app/syllabus/45/ese"},
	},
	"46": {
		{Dept: "All", Route: "app/syllabus/46/all"},
	},
}

var syllabusTopics = map[string]map[string][]SyllabusTopic{
	"45": {
		"ae": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1MncnGSZjCFeDW4rj4atEUGQ45YCoj6Xk/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1L-sekRiA0CP3WuOHiBRp0tQ2jqWpyyaA/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1-OaK1JxCIjj2ivGq3Rrh3ewTlgrZoF5d/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1710DObmZ5xtEG89rP4und4gXj9a939bf/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1pzROBC9emUvOtVCVTW7aRcHcBsITpno7/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/117wp4kXbw7zSy2JRM5ZGGmmAq5Egb4aC/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1oFfI3wCK9YKwNKhXdM8A9cah2CscQ89T/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1Shb2GaIAbaWaR4xhlflCFBsDumWrV8r2/view"},
		},
		"ye": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1eDndQhSYqdytgi6aHtGG9PnSWEF5ifWX/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1njQ8SshIftzAOwDjgLFYz1lByQfqvhR8/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/16CoiVNHeEOgUzeA7w9vYPh6K5PWxSrvb/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1geeoR4KcO0wtsw6cMRDgSEtz_8NmLGew/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1m2OscEYeA2_2O7rTfSqhFybjSys2uQia/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1XG7L4nu8TfZodNol5Cxd7x_j5yjQ5DBH/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/13CuUYK_9Qrvy3_A8KuJriHQjXcBnhU2Q/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1e5ExWn4c4EjqG2aZFOZc73MXNwzN7wJE/view"},
		},
		"fe": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1O5BB6yMCnA9XBp57uyCF4s1hzGoDvzAN/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/173EUX3cHGC0V-Siegq1R6JBfMviRvVbp/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1A6dHUlyQf4Qq4KX7zCs4Pk3k2Eevu_2G/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1KmCxfznOS20t9pIzQPyBtHknqqof0pUl/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1mK7IG8pT-9mTduo9owe2KmKymf4bo1dn/view"},
			{Topic: "L 3,2", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
			{Topic: "L 4,1", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
			{Topic: "L 4,2", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
		},
		"ipe": {
			{Topic: "Course Outline", URL: "https://drive.google.com/file/d/1IxKsBIK6pblnbU7f_6XFWmXssqMVDtIO/view"},
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1muXlioor1tOFCZG2x6LNx5TEt-blRYAg/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/17QSqxeIY4yYO_sJWn22BSDu2dFEhvV82/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1hOxZb5F_DG0O0g9w4ch0P3ryXze-2Gvt/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1NSqYazzsCzJ7pjicctDsUPKa1HsuhCl7/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1eLjnreLz71_n6Sn8IJKffNrr5Jqritlo/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1zGg4b6NqePEFMBm7cVTZ5wrIycT0eK5v/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1aW_My0_KJkpMNgY3AG376YaZQcgCiUC0/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/124uyTsGyN10lBDwKxTnW9yECY9OWo8aL/view"},
		},
		"wpe": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1mIXBLRpourGN1f7gdSKSAnWzsmvBF-gx/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1eMnAIeA_Kdypj6iGyZJOmp2_9ikbOQEh/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1UO-sGBTgSV878mUNBOAVj9VnC1HnHj_2/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/19_R61uRsV-bVTmqRR1XgwIhzO65K9d-r/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1wkAFnn4BHJB3PS5FDsVTvRHqvCZZv_xU/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1OwuY-5f4LLLq0ZJ3_Y8mJsSYsxE0ycuh/view?usp=sharing"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1kH-pbcC7k00igdw-V8ZQDCA1Ex5Avn8-/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1Z4gfIBSEhWA0Jq2-1USRfeeF_cOsgcRn/view"},
		},
		"tem": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1RuQRHQR7-83quVR894ICWvWPOxKoHB-w/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1wtx9QehPgoFC779LFLKAWI93V2EZ_-zm/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/18Hv8H6nOsFshr5WU6k9hd_h3Sup9ALBn/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1ZGUTVvlqy20dveB4YqW-a6rYbcXmrvFO/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1E0SLhOFJoe9yNa9GMOqBlvD7qgLmP3Fk/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1YATteaW6hmQGe29Avu9oS_h4sec9GPPQ/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1T077V6tjz09ByqX9zcURil_ADPwlWgpj/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1hrwRBZgPH6d4XgrraTU6OFfGWEKaw6JO/view"},
		},
		"dce": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1Np9iViffVrG3Y7wXH4GXoz4J7zxyUtlB/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1QGGBzivE0xSxL42JdCgUtEOacUzb7USd/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1dgMemARdQn5DOm607kJSL1sXpML2i7Nu/view"},
			{Topic: "L 2,2", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1dwduNPeuezE90AfRtB2FPyyohkfWMhXR/view"},
			{Topic: "L 3,2", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
			{Topic: "L 4,1", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
			{Topic: "L 4,2", URL: "https://triptoafsin.github.io/sample-default-pages/willBeSoonAvailable.html"},
		},
		"tfd": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1foBzDjChNz2k9qhis5vmm6Ezae5rMz9H/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1kqw1s9k46bYq5CPYEjB0hwWP6GEkAqfB/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1zl9t1Cv_Gr2PDg-vr12tU2eD3gYzNTA-/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/151LU21z_wiL-aYgvpP-hBJF55BGOm3hA/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1_y6St7PdOSzbGxlEbX9yzG9zoi_0LHAH/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1M-AJ4Gmqfv6dBhBZnea9N2jjDV1Fd7zT/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1C_epjMv-yiu7Ex5NCG8iEZuJCu9JTGap/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1yzi_Lgj7i2oHFDgMZMwn0w3gs7hX3g7U/view"},
		},
		"tmdm": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/0B-DAyRDeIvuSXy1XeTg5QjV5aG9yY3VXLU9GRzlwbVY5RE5F/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/0B-DAyRDeIvuSXy1XeTg5QjV5aG9yY3VXLU9GRzlwbVY5RE5F/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1AynxvXu1-9Qs6sEII7T8yXCcrf8g-ePT/view?usp=sharing"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1B-uDSwg3lqamJ3OrWp4PjT7gFpnz1tFG/view?usp=sharing"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1AxPvKoB_y6pYgt3EKV8GMaZgIgQ9C4ee/view?usp=sharing"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1Aulrho3j5M94Tnal9JZVZSDOV2XPD1-3/view?usp=sharing"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1bfBLOj1rzE2ReIwc_Eq9_JMRqgnZTE1Z/view?usp=sharing"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1kG5NuyACxjvUnvp_DasmaESZy6hM_RwW/view?usp=sharing"},
		},
		"ese": {
			{Topic: "L 1,1", URL: "https://drive.google.com/file/d/1k6sDYnh7ko5VLtvhNP1QvO_0DdLqTdUz/view"},
			{Topic: "L 1,2", URL: "https://drive.google.com/file/d/1ZtCaCVTyOsHRchmI_txuybFhYcHqBqYN/view"},
			{Topic: "L 2,1", URL: "https://drive.google.com/file/d/1pxKgdj1njWvJGSku8PI1ZM1qh0LsGpBG/view"},
			{Topic: "L 2,2", URL: "https://drive.google.com/file/d/1lFCpkdXm4i1yyjxDgKuEigQXUxAK-nwM/view"},
			{Topic: "L 3,1", URL: "https://drive.google.com/file/d/1oUUwG8k7HhE0CScdTbqIzT4pLDDehgdB/view"},
			{Topic: "L 3,2", URL: "https://drive.google.com/file/d/1JuBcpTjZkNqubPccKx7kq0syjsB2eXWW/view"},
			{Topic: "L 4,1", URL: "https://drive.google.com/file/d/1gmCPlG3x0vE0ZYPq1s94MxaH6iXThZGo/view"},
			{Topic: "L 4,2", URL: "https://drive.google.com/file/d/1ZaHwtNIIchuY0reWUajIrreKtt8diHAA/view"},
		},
	},
	"46": {
		"all": {
			{Topic: "Download", URL: "https://drive.google.com/file/d/1MncnGSZjCFeDW4rj4atEUGQ45YCoj6Xk/view"},
		},
	},
}

// SyllabusBatches returns the syllabus batch listing.
func SyllabusBatches() []SyllabusBatch {
	return syllabusBatches
}

// SyllabusDepts returns the department listing for a batch.
func SyllabusDepts(batch string) ([]SyllabusDept, error) {
	depts, ok := syllabusDepts[batch]
	if !ok {
		return nil, &NotFoundError{Segment: "Batch"}
	}
	return depts, nil
}

// SyllabusTopics returns the syllabus links for a department. Batch 46's
// single "all" entry is returned as one object rather than a list,
// matching the legacy response.
func SyllabusTopics(batch, dept string) (any, error) {
	batchData, ok := syllabusTopics[batch]
	if !ok {
		return nil, &NotFoundError{Segment: "Syllabus"}
	}
	topics, ok := batchData[strings.ToLower(dept)]
	if !ok {
		return nil, &NotFoundError{Segment: "Syllabus"}
	}
	if batch == "46" && strings.EqualFold(dept, "all") && len(topics) == 1 {
		return topics[0], nil
	}
	return topics, nil
}
