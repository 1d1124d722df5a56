package apipoolv1

import (
	"github.com/fulldump/box"
)

func BuildV1Pool(v1 *box.R) *box.R {

	pools := v1.Resource("/pools").
		WithActions(
			box.Get(listPools).WithName("listPools"),
			box.Post(createPool).WithName("createPool"),
			box.ActionPost(find).WithName("find"),
		)

	v1.Resource("/pools/{poolName}").
		WithActions(
			box.Get(getPool).WithName("getPool"),
			box.ActionPost(allocate).WithName("allocate"),
			box.ActionPost(duplicate).WithName("duplicate"),
			box.ActionPost(release).WithName("release"),
			box.ActionPost(refCounts).WithName("refCounts"),
			box.ActionPost(dropPool).WithName("dropPool"),
		)

	return pools
}
