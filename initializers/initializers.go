package initializers

import (
	"context"

	"kaizen-tools-backend/config"
	"kaizen-tools-backend/fiberlog"
	approvalhandler "kaizen-tools-backend/lib/approval"
	audithandler "kaizen-tools-backend/lib/audit"
	authhandler "kaizen-tools-backend/lib/auth"
	departmentprovider "kaizen-tools-backend/lib/dicts/department"
	xlsexport "kaizen-tools-backend/lib/export/xls"
	kaizenreqhandler "kaizen-tools-backend/lib/kaizen-req"
	notifyhandler "kaizen-tools-backend/lib/notify"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	departmentprovider.NewHandler()
	authhandler.NewHandler()
	audithandler.NewHandler()
	notifyhandler.NewHandler()
	xlsexport.NewHandler()
	kaizenreqhandler.NewHandler()
	approvalhandler.NewHandler()
}
