// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

// Importing the Cloud SQL MySQL dialer registers it with
// database/sql's mysql driver, so a dataSourceName of the form
// "user:pass@cloudsql(project:region:instance)/dbname" opens a
// connection through the Cloud SQL proxy rather than a direct TCP
// dial, the same way storage/db/dbtest sets up its Cloud SQL test
// path.
import (
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
)
