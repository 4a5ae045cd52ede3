package sheet

import (
	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
)

type (
	anagraficaRow = anagraficaModel.AnagraficaModel
	distrettoRow  = distrettoModel.DistrettoModel
)
