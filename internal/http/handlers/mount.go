package handlers

import "github.com/gin-gonic/gin"

// Mount helpers wire each resource screen onto a route group. Admin-only
// screens include their transfer endpoints directly; the leave-request screen
// splits them so the router can keep transfer behind the admin gate while the
// list stays open to every authenticated user.

func MountRoles(g *gin.RouterGroup, d *Deps) {
	r := roleResource()
	mountResource(g, d, r)
	mountTransfer(g, d, r)
}

func MountUsers(g *gin.RouterGroup, d *Deps) {
	r := userResource()
	mountResource(g, d, r)
	mountTransfer(g, d, r)
}

func MountLeaveTypes(g *gin.RouterGroup, d *Deps) {
	r := leaveTypeResource()
	mountResource(g, d, r)
	mountTransfer(g, d, r)
}

func MountLeaveApprovals(g *gin.RouterGroup, d *Deps) {
	r := leaveApprovalResource()
	mountResource(g, d, r)
	mountTransfer(g, d, r)
}

func MountAudits(g *gin.RouterGroup, d *Deps) {
	mountResource(g, d, auditResource())
}

func MountLeaveRequests(g *gin.RouterGroup, d *Deps) {
	mountResource(g, d, leaveRequestResource())
}

func MountLeaveRequestTransfer(g *gin.RouterGroup, d *Deps) {
	mountTransfer(g, d, leaveRequestResource())
}
