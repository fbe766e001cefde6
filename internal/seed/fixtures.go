package seed

import "lawflow/internal/domain"

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZIP  = "application/zip"
)

type taskFixture struct {
	title       string
	status      string
	assignee    string
	dueIn       *int
	priority    string
	tags        string
	description string
}

type activityFixture struct {
	actor   string
	verb    string
	detail  string
	daysAgo int
}

type fileFixture struct {
	name     string
	mimeType string
	uploader string
}

type matter struct {
	title           string
	transactionType string
	location        string
	status          string
	risk            string
	bgColor         string
	startIn         int
	closeIn         int
	client          int
	tasks           []taskFixture
	activity        []activityFixture
	files           []fileFixture
}

var clients = []domain.Client{
	{
		Name:  "Sofía Martínez",
		Email: optional("sofia.martinez@example.com"),
		Phone: optional("+34 600 111 222"),
		Notes: optional("Buyer relocating to Costa del Sol. Needs NIE + Spanish bank account guidance."),
	},
	{
		Name:  "James O'Connor",
		Email: optional("j.oconnor@example.com"),
		Phone: optional("+34 611 333 444"),
		Notes: optional("Seller. Mortgage cancellation required. Wants tight notary window."),
	},
	{
		Name:  "María & Daniel Ruiz",
		Email: optional("ruiz.family@example.com"),
		Phone: optional("+34 622 555 888"),
		Notes: optional("New-build purchase. Snagging plan + developer guarantees."),
	},
	{
		Name:  "Laura Pérez",
		Email: optional("laura.perez@example.com"),
		Phone: optional("+34 633 777 999"),
		Notes: optional("Sale with tourist license considerations; HOA rules review."),
	},
}

var matters = []matter{
	{
		title: "Purchase – Apartment in Nueva Andalucía", transactionType: "Purchase", location: "Marbella",
		status: "Due Diligence", risk: "At Risk", bgColor: "#0b1220", startIn: -12, closeIn: 30, client: 0,
		tasks: []taskFixture{
			{"Solicitar Nota Simple + verificar cargas", "In Progress", "Lucía", days(1), "High", "DD,Registry", "Obtener extracto del registro de la propiedad y verificar hipotecas o cargas sobre el título."},
			{"Verificar cuotas comunidad + recibos IBI", "Backlog", "Ana", days(5), "Medium", "DD,HOA", "Confirmar que las cuotas comunitarias están pagadas y obtener certificado IBI."},
			{"Verificar estado LPO/AFO con ayuntamiento", "Review", "Carlos", days(-2), "High", "DD,Urbanism", "Vencido: esperando respuesta del ayuntamiento. Verificar permisos de urbanismo."},
			{"Redactar/revisar contrato de Arras (favorable comprador)", "Review", "Carlos", days(2), "High", "Contracts,Legal", "Preparar contrato de depósito con condiciones favorables para comprador internacional."},
			{"Enviar guía apertura cuenta bancaria española", "Done", "Ana", days(-6), "Low", "Client,Banking", "Enviadas instrucciones detalladas para abrir cuenta bancaria española."},
			{"Confirmar fecha de firma con el vendedor", "Backlog", "Javier", nil, "Low", "Notary", ""},
		},
		activity: []activityFixture{
			{"Ana López", "Opened matter", "Reviewing DD blockers for Marbella purchase.", 12},
			{"Lucía", "Requested", "Nota Simple request sent to Land Registry.", 8},
			{"Carlos", "Commented", "Arras draft ready for partner review.", 5},
			{"Ana López", "Uploaded file", "Added property photos and HOA statutes.", 3},
			{"System", "Task completed", "Spanish bank account guidance email sent.", 2},
			{"Carlos", "Updated task", "Arras contract moved to review status.", 1},
		},
		files: []fileFixture{
			{"Nota_Simple_Request.pdf", mimePDF, "Ana López"},
			{"Arras_Draft_v1.docx", mimeDOCX, "Carlos"},
			{"Property_Photos.zip", mimeZIP, "Ana López"},
			{"HOA_Statutes.pdf", mimePDF, "Ana López"},
		},
	},
	{
		title: "Sale – Villa in Elviria", transactionType: "Sale", location: "Marbella",
		status: "Contracts", risk: "Normal", bgColor: "#071a12", startIn: -20, closeIn: 18, client: 1,
		tasks: []taskFixture{
			{"Coordinar certificado energético + divulgaciones", "In Progress", "Ana", days(0), "High", "DD,Energy", "Vence hoy: Obtener certificado obligatorio de eficiencia energética y preparar divulgaciones del vendedor."},
			{"Redactar contrato de reserva", "Backlog", "Carlos", days(3), "Medium", "Contracts,Legal", "Preparar contrato privado de compraventa para venta de villa."},
			{"Cancelación hipoteca: solicitar saldo pendiente", "In Progress", "Javier", days(-1), "High", "Notary,Bank", "Contactar banco para importe exacto de cancelación hipoteca e instrucciones."},
			{"Estimación Plusvalía para vendedor", "Review", "Lucía", days(7), "Medium", "Taxes,Closing", "Calcular responsabilidad tributaria municipal por ganancias de capital del vendedor."},
			{"Recopilar DNI vendedor + prueba domicilio", "Done", "Ana", days(-10), "Low", "KYC,Documentation", "Recogidos pasaportes y factura de servicios para verificación del vendedor."},
		},
		activity: []activityFixture{
			{"Ana López", "Collected documents", "Gathered seller ID and address proof.", 18},
			{"System", "Deadline", "Energy certificate due today.", 2},
			{"Javier", "Contacted bank", "Requested mortgage cancellation balance.", 5},
			{"Lucía", "Calculated", "Plusvalía estimate completed for seller.", 3},
			{"Ana López", "Uploaded file", "Added energy certificate and tax assessment.", 4},
			{"Carlos", "Drafted", "Reservation agreement draft in progress.", 1},
		},
		files: []fileFixture{
			{"Energy_Certificate.pdf", mimePDF, "Ana López"},
			{"Mortgage_Cancellation_Request.pdf", mimePDF, "Javier"},
			{"Property_Deed_Scan.pdf", mimePDF, "Ana López"},
			{"Tax_Assessment_2024.pdf", mimePDF, "Lucía"},
		},
	},
	{
		title: "Purchase – Townhouse in La Cala de Mijas", transactionType: "Purchase", location: "Mijas",
		status: "Notary", risk: "Critical", bgColor: "#1b1020", startIn: -28, closeIn: 6, client: 0,
		tasks: []taskFixture{
			{"Reservar notaría + circular agenda de cierre", "In Progress", "Javier", days(1), "High", "Notary,Scheduling", "Asegurar cita notarial y distribuir calendario de finalización a todas las partes."},
			{"Preparar declaración de cierre + ruta de fondos", "In Progress", "Lucía", days(2), "High", "Closing,Finance", "Calcular cifras finales de liquidación y coordinar transferencia internacional."},
			{"Obtener confirmación certificado NIE", "Review", "Ana", days(-3), "High", "NIE,KYC", "Ruta crítica: confirmación NIE requerida para compra de propiedad. Seguimiento necesario."},
			{"Preparar paquete presentación ITP/AJD", "Backlog", "Lucía", days(6), "High", "Taxes,Closing", "Compilar documentos para presentación de impuesto de transmisiones y sello."},
			{"Revisión final borrador escritura", "Backlog", "Carlos", days(3), "High", "Notary,Legal", "Revisar escritura de propiedad final por precisión antes de cita notarial."},
		},
		activity: []activityFixture{
			{"System", "Risk escalated", "Notary in 1 week; NIE confirmation overdue.", 3},
			{"Ana López", "Chased", "NIE confirmation status follow-up.", 5},
			{"Lucía", "Prepared", "Completion statement and funds routing ready.", 2},
			{"Javier", "Booked", "Notary slot confirmed for next week.", 1},
			{"Carlos", "Reviewed", "Deed draft final review completed.", 4},
			{"Ana López", "Uploaded file", "Added NIE application and bank transfer confirmation.", 6},
		},
		files: []fileFixture{
			{"Completion_Statement.xlsx", mimeXLSX, "Lucía"},
			{"NIE_Application_Form.pdf", mimePDF, "Ana López"},
			{"Bank_Transfer_Confirmation.pdf", mimePDF, "Lucía"},
			{"Property_Survey_Report.pdf", mimePDF, "Carlos"},
			{"Construction_Permit_Check.pdf", mimePDF, "Ana López"},
		},
	},
	{
		title: "Purchase – New-build in Cancelada (handover)", transactionType: "Purchase", location: "Estepona",
		status: "Notary", risk: "At Risk", bgColor: "#0b1220", startIn: -35, closeIn: 10, client: 2,
		tasks: []taskFixture{
			{"Garantías promotor: verificar cobertura aval bancario", "In Progress", "Carlos", days(2), "High", "New-build,Guarantees", "Confirmar que aval bancario del promotor cubre todas las obligaciones de finalización."},
			{"Plan de reparaciones: coordinar fecha inspección", "Review", "Ana", days(4), "Medium", "New-build,Quality", "Programar inspección profesional de defectos de construcción y problemas de calidad."},
			{"Notaría: confirmar redacción poder notarial", "Backlog", "Javier", days(7), "Medium", "Notary,Legal", "Revisar documento de poder para firma de entrega."},
			{"Preparar carta traspaso suministros", "Backlog", "Lucía", days(10), "Low", "Post-completion,Utilities", "Redactar carta para transferir contratos de agua, electricidad y gas."},
			{"Recopilar DNIs + prueba de fondos", "Done", "Ana", days(-20), "Low", "KYC,Finance", "Verificadas identidades del comprador y extractos bancarios para compra sobre plano."},
		},
		activity: []activityFixture{
			{"Ana López", "Collected", "Client IDs and proof of funds received.", 32},
			{"Carlos", "Verified", "Developer guarantee coverage confirmed.", 4},
			{"Ana López", "Coordinated", "Snagging inspection date set.", 3},
			{"Carlos", "Uploaded file", "Added snagging report and handover checklist.", 2},
			{"Lucía", "Prepared", "Utilities transfer letter drafted.", 1},
			{"Javier", "Reviewed", "Power of attorney wording approved.", 5},
		},
		files: []fileFixture{
			{"Developer_Guarantee.pdf", mimePDF, "Carlos"},
			{"New_Build_Plans.pdf", mimePDF, "Ana López"},
			{"Snagging_Report.xlsx", mimeXLSX, "Carlos"},
			{"Handover_Checklist.docx", mimeDOCX, "Ana López"},
			{"Utilities_Contract.pdf", mimePDF, "Lucía"},
		},
	},
	{
		title: "Sale – Penthouse near Puerto Banús", transactionType: "Sale", location: "Marbella",
		status: "Registry", risk: "Normal", bgColor: "#0d1726", startIn: -46, closeIn: -3, client: 3,
		tasks: []taskFixture{
			{"Presentar escritura al Registro de la Propiedad", "In Progress", "Lucía", days(-4), "High", "Registry,Legal", "Vencido: cita de registro reprogramada. Presentar escritura ejecutada para inscripción de título."},
			{"Notificar comunidad + configurar domiciliación", "Backlog", "Ana", days(2), "Medium", "HOA,Utilities", "Informar asociación comunitaria de cambio de propiedad y organizar pagos automáticos."},
			{"Presentar Plusvalía (impuesto municipal)", "Review", "Lucía", days(1), "High", "Taxes,Compliance", "Presentar declaración tributaria municipal por ganancias de capital."},
			{"Cerrar expediente + archivar documentos", "Backlog", "Ana", days(14), "Low", "Admin,Archiving", "Completar organización final del expediente y preparar para almacenamiento a largo plazo."},
			{"Email finalización cliente + factura", "Done", "Ana", days(-2), "Low", "Client,Billing", "Enviado resumen final de transacción y factura de honorarios profesionales."},
		},
		activity: []activityFixture{
			{"Lucía", "Submitted", "Deed presented to Land Registry.", 6},
			{"Lucía", "Registry", "Registry submission delayed; appointment rescheduled.", 4},
			{"Ana López", "Sent", "Client completion email and invoice.", 5},
			{"Lucía", "Filed", "Plusvalía municipal tax filed.", 2},
			{"Ana López", "Uploaded file", "Added final tax calculation and closing package.", 3},
			{"Ana López", "Notified", "HOA and utilities companies updated.", 1},
		},
		files: []fileFixture{
			{"Land_Registry_Submission_Receipt.pdf", mimePDF, "Lucía"},
			{"Final_Tax_Calculation.xlsx", mimeXLSX, "Lucía"},
			{"Client_Closing_Package.pdf", mimePDF, "Ana López"},
			{"Registry_Confirmation_Letter.pdf", mimePDF, "Lucía"},
		},
	},
	{
		title: "Purchase – Beachfront Apartment in Marbella", transactionType: "Purchase", location: "Marbella",
		status: "Due Diligence", risk: "Normal", bgColor: "#0d1421", startIn: -8, closeIn: 45, client: 0,
		tasks: []taskFixture{
			{"Solicitar información registral propiedad", "In Progress", "Lucía", days(3), "High", "DD,Registry", "Obtener Nota Simple y verificar detalles de propiedad frente al mar."},
			{"Verificar cumplimiento regulaciones costeras", "Backlog", "Carlos", days(8), "Medium", "DD,Urbanism", "Comprobar restricciones o permisos de zona costera."},
			{"Verificación licencia turística", "Review", "Ana", days(2), "High", "DD,Legal", "Confirmar estado y restricciones de licencia de alquiler turístico."},
			{"Acuerdos acceso playa comunidad", "Backlog", "Lucía", days(10), "Medium", "DD,HOA", "Revisar normas comunitarias para acceso y uso de playa."},
			{"Redactar contrato de reserva", "Done", "Carlos", days(-5), "Low", "Contracts", "Acuerdo inicial de reserva completado."},
		},
		activity: []activityFixture{
			{"Ana López", "Opened matter", "Beachfront apartment purchase intake.", 8},
			{"Lucía", "Requested", "Coastal property registry check initiated.", 6},
			{"Carlos", "Reviewed", "Tourist license status verified.", 3},
			{"Ana López", "Uploaded file", "Added beach access agreements.", 2},
		},
		files: []fileFixture{
			{"Coastal_Property_Check.pdf", mimePDF, "Lucía"},
			{"Tourist_License_Verification.pdf", mimePDF, "Ana López"},
		},
	},
	{
		title: "Sale – Townhouse in Mijas Costa", transactionType: "Sale", location: "Mijas",
		status: "Contracts", risk: "At Risk", bgColor: "#0a1812", startIn: -15, closeIn: 25, client: 3,
		tasks: []taskFixture{
			{"Preparar divulgaciones vendedor", "In Progress", "Ana", days(1), "High", "DD,Legal", "Compilar documentos obligatorios de divulgación del vendedor."},
			{"Coordinación certificado energético", "Review", "Lucía", days(-1), "High", "DD,Energy", "Vencido: Programar visita de evaluador energético."},
			{"Cálculo cancelación hipoteca", "Backlog", "Javier", days(5), "Medium", "Notary,Finance", "Contactar banco para saldo exacto de cancelación hipoteca e instrucciones."},
			{"Redactar contrato privado compraventa", "Backlog", "Carlos", days(8), "Medium", "Contracts,Legal", "Preparar contrato de Arras con protecciones para vendedor."},
			{"Completar KYC cliente", "Done", "Ana", days(-8), "Low", "KYC", "Verificación de identidad del vendedor y documentación recopilada."},
		},
		activity: []activityFixture{
			{"Ana López", "Opened matter", "Townhouse sale for Mijas Costa property.", 15},
			{"System", "Risk escalated", "Energy certificate overdue - impacts closing.", 3},
			{"Javier", "Contacted bank", "Mortgage cancellation details requested.", 4},
			{"Carlos", "Drafted", "Private purchase agreement in progress.", 1},
		},
		files: []fileFixture{
			{"Seller_Disclosures.pdf", mimePDF, "Ana López"},
			{"Mortgage_Details.pdf", mimePDF, "Javier"},
		},
	},
	{
		title: "Purchase – Villa in Benahavís", transactionType: "Purchase", location: "Marbella",
		status: "Due Diligence", risk: "Normal", bgColor: "#0e1522", startIn: -5, closeIn: 50, client: 2,
		tasks: []taskFixture{
			{"Tasación integral propiedad", "In Progress", "Carlos", days(5), "High", "DD,Survey", "Programar tasación profesional de estructura y límites de villa."},
			{"Verificación derechos agua y pozo", "Backlog", "Lucía", days(12), "Medium", "DD,Utilities", "Comprobar titularidad de pozo privado y derechos de extracción de agua."},
			{"Permisos uso agrícola", "Review", "Ana", days(8), "Medium", "DD,Urbanism", "Verificar clasificación rural de propiedad y usos permitidos."},
			{"Acuerdos mantenimiento vía acceso", "Backlog", "Carlos", days(15), "Low", "DD,Infrastructure", "Revisar acuerdos comunitarios para mantenimiento de carreteras."},
			{"Apoyo solicitud NIE", "Done", "Ana", days(-3), "Low", "Client,NIE", "Guiado cliente a través del proceso de solicitud NIE."},
		},
		activity: []activityFixture{
			{"Ana López", "Opened matter", "Luxury villa purchase in Benahavís.", 5},
			{"Carlos", "Scheduled", "Professional property survey booked.", 3},
			{"Lucía", "Verified", "Water rights and well ownership confirmed.", 2},
			{"Ana López", "Guided", "NIE application process explained to client.", 4},
		},
		files: []fileFixture{
			{"Property_Survey_Schedule.pdf", mimePDF, "Carlos"},
			{"Water_Rights_Document.pdf", mimePDF, "Lucía"},
		},
	},
}
