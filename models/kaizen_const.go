package models

type KaizenStatus string

const (
	StatusDraft               KaizenStatus = "DRAFT"
	StatusPendingOwnManager   KaizenStatus = "PENDING_OWN_MANAGER"
	StatusPendingOwnHod       KaizenStatus = "PENDING_OWN_HOD"
	StatusPendingCrossManager KaizenStatus = "PENDING_CROSS_MANAGER"
	StatusPendingCrossHod     KaizenStatus = "PENDING_CROSS_HOD"
	StatusPendingAgm          KaizenStatus = "PENDING_AGM"
	StatusPendingGm           KaizenStatus = "PENDING_GM"
	StatusApproved            KaizenStatus = "APPROVED"
	StatusRejected            KaizenStatus = "REJECTED"
)

var statusHumanName = map[KaizenStatus]string{
	StatusDraft:               "Черновик",
	StatusPendingOwnManager:   "Ожидает менеджера своего подразделения",
	StatusPendingOwnHod:       "Ожидает руководителя своего подразделения",
	StatusPendingCrossManager: "Ожидает менеджеров смежных подразделений",
	StatusPendingCrossHod:     "Ожидает руководителей смежных подразделений",
	StatusPendingAgm:          "Ожидает заместителя генерального директора",
	StatusPendingGm:           "Ожидает генерального директора",
	StatusApproved:            "Согласована",
	StatusRejected:            "Отклонена",
}

func (s KaizenStatus) ToHuman() string {
	if human, exist := statusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s KaizenStatus) IsValid() bool {
	_, exist := statusHumanName[s]
	return exist
}

// IsTerminal - заявка в терминальном статусе не принимает решения
func (s KaizenStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type KaizenStage string

const (
	StageDraft        KaizenStage = "DRAFT"
	StageOwnManager   KaizenStage = "OWN_MANAGER"
	StageOwnHod       KaizenStage = "OWN_HOD"
	StageCrossManager KaizenStage = "CROSS_MANAGER"
	StageCrossHod     KaizenStage = "CROSS_HOD"
	StageAgm          KaizenStage = "AGM"
	StageGm           KaizenStage = "GM"
	StageCompleted    KaizenStage = "COMPLETED"
)

// statusStage - статус и этап всегда меняются парой
var statusStage = map[KaizenStatus]KaizenStage{
	StatusDraft:               StageDraft,
	StatusPendingOwnManager:   StageOwnManager,
	StatusPendingOwnHod:       StageOwnHod,
	StatusPendingCrossManager: StageCrossManager,
	StatusPendingCrossHod:     StageCrossHod,
	StatusPendingAgm:          StageAgm,
	StatusPendingGm:           StageGm,
	StatusApproved:            StageCompleted,
}

// StageFor возвращает этап, парный статусу.
// Для REJECTED этап остается тем, на котором заявка была отклонена.
func (s KaizenStatus) StageFor() (KaizenStage, bool) {
	stage, exist := statusStage[s]
	return stage, exist
}

type Decision string

const (
	DecisionPending  Decision = "PENDING"
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

type StageType string

const (
	StageTypeOwnManager   StageType = "OWN_MANAGER"
	StageTypeOwnHod       StageType = "OWN_HOD"
	StageTypeCrossManager StageType = "CROSS_MANAGER"
	StageTypeCrossHod     StageType = "CROSS_HOD"
	StageTypeAgm          StageType = "AGM"
	StageTypeGm           StageType = "GM"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

type EvaluatorRole string

const (
	EvaluatorManager EvaluatorRole = "MANAGER"
	EvaluatorHod     EvaluatorRole = "HOD"
)

type AuditAction string

const (
	AuditRequestCreated       AuditAction = "REQUEST_CREATED"
	AuditRequestUpdated       AuditAction = "REQUEST_UPDATED"
	AuditRequestSubmitted     AuditAction = "REQUEST_SUBMITTED"
	AuditOwnManagerApproved   AuditAction = "OWN_MANAGER_APPROVED"
	AuditOwnManagerRejected   AuditAction = "OWN_MANAGER_REJECTED"
	AuditOwnHodApproved       AuditAction = "OWN_HOD_APPROVED"
	AuditOwnHodRejected       AuditAction = "OWN_HOD_REJECTED"
	AuditCrossManagerApproved AuditAction = "CROSS_MANAGER_APPROVED"
	AuditCrossManagerRejected AuditAction = "CROSS_MANAGER_REJECTED"
	AuditCrossHodApproved     AuditAction = "CROSS_HOD_APPROVED"
	AuditCrossHodRejected     AuditAction = "CROSS_HOD_REJECTED"
	AuditAgmApproved          AuditAction = "AGM_APPROVED"
	AuditAgmRejected          AuditAction = "AGM_REJECTED"
	AuditGmApproved           AuditAction = "GM_APPROVED"
	AuditGmRejected           AuditAction = "GM_REJECTED"
)
